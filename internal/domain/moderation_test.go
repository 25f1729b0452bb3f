package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestModerate_LengthBoundaries(t *testing.T) {
	m := NewModerator(nil)

	if v := m.Moderate("123456789"); v.Approved {
		t.Fatal("9 characters must be flagged too short")
	}
	if v := m.Moderate("merci bien"); !v.Approved {
		t.Fatalf("10 clean characters must be approved, flags=%v", v.Flags)
	}
	if v := m.Moderate(strings.Repeat("e", 2000)); !v.Approved {
		t.Fatalf("2000 characters must be approved, flags=%v", v.Flags)
	}
	if v := m.Moderate(strings.Repeat("e", 2001)); v.Approved {
		t.Fatal("2001 characters must be flagged too long")
	}
}

func TestModerate_LinkFlood(t *testing.T) {
	m := NewModerator(nil)

	two := "regardez http://a.com et http://b.com"
	if v := m.Moderate(two); !v.Approved {
		t.Fatalf("two links must pass, flags=%v", v.Flags)
	}
	three := "regardez http://a.com http://b.com http://c.com"
	if v := m.Moderate(three); v.Approved {
		t.Fatal("three links must be flagged")
	}
}

func TestModerate_KeywordCaseInsensitive(t *testing.T) {
	m := NewModerator(nil)
	v := m.Moderate("Grande VENTE ce week-end dans ma boutique")
	if v.Approved {
		t.Fatal("commercial keyword must be flagged")
	}
	if len(v.Flags) != 1 {
		t.Fatalf("want exactly one flag, got %v", v.Flags)
	}
}

func TestModerate_AccumulatesFlags(t *testing.T) {
	m := NewModerator(nil)
	v := m.Moderate("Profitez de notre vente exceptionnelle! http://a.com http://b.com http://c.com")
	if v.Approved {
		t.Fatal("must be rejected")
	}
	if len(v.Flags) != 2 {
		t.Fatalf("want two flags (keyword + links), got %v", v.Flags)
	}
}

func TestVerdictErr(t *testing.T) {
	m := NewModerator(nil)
	if err := m.Moderate("un message parfaitement anodin").Err(); err != nil {
		t.Fatalf("approved verdict must have nil error, got %v", err)
	}
	err := m.Moderate("court").Err()
	var mod *ModerationError
	if !errors.As(err, &mod) || len(mod.Flags) == 0 {
		t.Fatalf("want ModerationError with flags, got %v", err)
	}
}

func TestModerate_NeverRewrites(t *testing.T) {
	m := NewModerator(nil)
	in := "achetez, achat immédiat!!"
	if v := m.Moderate(in); v.Text != in {
		t.Fatalf("text must be returned unmodified, got %q", v.Text)
	}
}

func TestModerate_ConfigurableDenylist(t *testing.T) {
	m := NewModerator([]string{"casino"})
	if v := m.Moderate("petite vente entre amis"); !v.Approved {
		t.Fatalf("custom denylist should not flag default terms, flags=%v", v.Flags)
	}
	if v := m.Moderate("venez jouer au casino en ligne"); v.Approved {
		t.Fatal("custom term must be flagged")
	}
}
