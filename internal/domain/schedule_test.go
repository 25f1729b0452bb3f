package domain

import (
	"errors"
	"testing"
	"time"
)

// helper: build a local time in a fixed zone so weekday math is stable
func at(t *testing.T, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

func TestExpandDaily_TodayNotPassed(t *testing.T) {
	// 2025-06-04 is a Wednesday; target 20:00 is still ahead at 09:00.
	now := at(t, 2025, time.June, 4, 9, 0)
	got, err := ExpandOccurrences(now, 20, 0, RecurDaily, nil, DefaultHorizonDays)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 30 {
		t.Fatalf("want 30 occurrences, got %d", len(got))
	}
	if got[0].Day() != 4 || got[0].Hour() != 20 {
		t.Fatalf("first occurrence should be today 20:00, got %v", got[0])
	}
}

func TestExpandDaily_TodayAlreadyPassed(t *testing.T) {
	now := at(t, 2025, time.June, 4, 9, 0)
	got, err := ExpandOccurrences(now, 8, 0, RecurDaily, nil, DefaultHorizonDays)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 29 {
		t.Fatalf("want 29 occurrences (today excluded), got %d", len(got))
	}
	if got[0].Day() != 5 {
		t.Fatalf("first occurrence should be tomorrow, got %v", got[0])
	}
}

func TestExpandWeekdays_SkipsWeekends(t *testing.T) {
	// Saved on a Wednesday at 09:00 with target 08:00: today is excluded
	// (passed) and so are Saturday/Sunday.
	now := at(t, 2025, time.June, 4, 9, 0)
	got, err := ExpandOccurrences(now, 8, 0, RecurWeekdays, nil, DefaultHorizonDays)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no occurrences")
	}
	for _, ts := range got {
		if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("weekend occurrence %v", ts)
		}
		if ts.Hour() != 8 || ts.Minute() != 0 {
			t.Fatalf("wrong time of day: %v", ts)
		}
	}
	if got[0].Day() != 5 {
		t.Fatalf("today should be excluded, first = %v", got[0])
	}
}

func TestExpandCustom_MembershipAndCount(t *testing.T) {
	now := at(t, 2025, time.June, 4, 9, 0)
	days := []int{1, 3, 5} // Mon, Wed, Fri
	got, err := ExpandOccurrences(now, 7, 30, RecurCustom, days, DefaultHorizonDays)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	allowed := map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}
	for _, ts := range got {
		if !allowed[ts.Weekday()] {
			t.Fatalf("unexpected weekday %v at %v", ts.Weekday(), ts)
		}
	}
	// Count by brute force over the same horizon.
	want := 0
	for off := 0; off < DefaultHorizonDays; off++ {
		day := now.AddDate(0, 0, off)
		ts := time.Date(day.Year(), day.Month(), day.Day(), 7, 30, 0, 0, now.Location())
		if ts.After(now) && allowed[ts.Weekday()] {
			want++
		}
	}
	if len(got) != want {
		t.Fatalf("want %d occurrences, got %d", want, len(got))
	}
}

func TestExpand_Ascending(t *testing.T) {
	now := at(t, 2025, time.June, 4, 12, 0)
	got, err := ExpandOccurrences(now, 12, 30, RecurDaily, nil, DefaultHorizonDays)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if !got[i].After(got[i-1]) {
			t.Fatalf("not ascending at %d: %v then %v", i, got[i-1], got[i])
		}
	}
	for _, ts := range got {
		if !ts.After(now) {
			t.Fatalf("back-dated occurrence %v", ts)
		}
	}
}

func TestExpand_InvalidArguments(t *testing.T) {
	now := at(t, 2025, time.June, 4, 9, 0)
	cases := []struct {
		name string
		hour int
		min  int
		mode RecurrenceMode
		days []int
	}{
		{"hour too big", 24, 0, RecurDaily, nil},
		{"negative minute", 8, -1, RecurDaily, nil},
		{"empty custom set", 8, 0, RecurCustom, nil},
		{"day out of range", 8, 0, RecurCustom, []int{7}},
		{"unknown mode", 8, 0, RecurrenceMode("hourly"), nil},
	}
	for _, tc := range cases {
		if _, err := ExpandOccurrences(now, tc.hour, tc.min, tc.mode, tc.days, DefaultHorizonDays); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: want ErrInvalidArgument, got %v", tc.name, err)
		}
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("08:05")
	if err != nil || h != 8 || m != 5 {
		t.Fatalf("want 8:05, got %d:%d err=%v", h, m, err)
	}
	for _, bad := range []string{"", "8", "25:00", "08:60", "ab:cd"} {
		if _, _, err := ParseClock(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%q: want ErrInvalidArgument, got %v", bad, err)
		}
	}
}
