package energy

import (
	"hash/fnv"
	"time"

	"github.com/patrickmn/go-cache"
)

// Reading is the energy reading of the day shown on the home screen.
type Reading struct {
	Date        string // YYYY-MM-DD
	ProfileType string
	Score       int // 0..100
	Message     string
}

// Service computes daily readings. Results live in an explicit cache owned by
// the service and passed by reference to its consumers; keys embed the date
// and entries expire at end of day, so a date change always recomputes.
type Service struct {
	cache *cache.Cache
}

// NewService builds the service with an empty cache.
func NewService() *Service {
	return &Service{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

// Today returns the reading for the given moment and user, computing it once
// per user per calendar day.
func (s *Service) Today(now time.Time, userID, profileType string) Reading {
	date := now.Format("2006-01-02")
	key := date + "|" + userID
	if v, ok := s.cache.Get(key); ok {
		return v.(Reading)
	}

	r := compute(date, userID, profileType)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	s.cache.Set(key, r, midnight.Sub(now))
	return r
}

// compute derives a deterministic score from (date, user) so the reading is
// stable all day and changes overnight.
func compute(date, userID, profileType string) Reading {
	h := fnv.New32a()
	_, _ = h.Write([]byte(date))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(userID))
	score := int(h.Sum32() % 101)

	return Reading{
		Date:        date,
		ProfileType: profileType,
		Score:       score,
		Message:     messageFor(score),
	}
}

func messageFor(score int) string {
	switch {
	case score <= 20:
		return "Énergie en veilleuse : accorde-toi un vrai repos aujourd'hui."
	case score <= 40:
		return "Réserve limitée : choisis une seule priorité et laisse le reste."
	case score <= 60:
		return "Énergie stable : avance à ton rythme, sans forcer."
	case score <= 80:
		return "Belle vitalité : un bon jour pour ce qui te tient à cœur."
	default:
		return "Énergie rayonnante : profite de cet élan, il est rare."
	}
}
