package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minPostRunes = 10
	maxPostRunes = 2000
	maxPostLinks = 2
)

// DefaultDenylist is the commercial-keyword list used when configuration
// provides none.
var DefaultDenylist = []string{"spam", "publicité", "vente", "achat", "promo"}

var linkRe = regexp.MustCompile(`https?://\S+`)

// ModerationVerdict is the outcome of moderating a single submission.
// Approved is true exactly when Flags is empty; the text is never rewritten.
type ModerationVerdict struct {
	Text     string
	Approved bool
	Flags    []string
}

// Err returns a ModerationError carrying the flag list when the verdict is a
// rejection, nil otherwise.
func (v ModerationVerdict) Err() error {
	if v.Approved {
		return nil
	}
	return &ModerationError{Flags: v.Flags}
}

// Moderator applies the keyword/length/link heuristics to submitted text.
type Moderator struct {
	denylist []string
}

// NewModerator builds a moderator with the given denylist, falling back to
// DefaultDenylist when the list is empty.
func NewModerator(denylist []string) *Moderator {
	if len(denylist) == 0 {
		denylist = DefaultDenylist
	}
	lowered := make([]string, 0, len(denylist))
	for _, term := range denylist {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			lowered = append(lowered, term)
		}
	}
	return &Moderator{denylist: lowered}
}

// Moderate evaluates every rule and accumulates flags so the caller can show
// comprehensive feedback instead of the first violation only.
func (m *Moderator) Moderate(text string) ModerationVerdict {
	var flags []string
	lower := strings.ToLower(text)

	for _, term := range m.denylist {
		if strings.Contains(lower, term) {
			flags = append(flags, fmt.Sprintf("terme commercial interdit: %q", term))
		}
	}

	n := utf8.RuneCountInString(text)
	if n > maxPostRunes {
		flags = append(flags, fmt.Sprintf("texte trop long (%d caractères, maximum %d)", n, maxPostRunes))
	}
	if n < minPostRunes {
		flags = append(flags, fmt.Sprintf("texte trop court (%d caractères, minimum %d)", n, minPostRunes))
	}

	if links := linkRe.FindAllString(text, -1); len(links) > maxPostLinks {
		flags = append(flags, fmt.Sprintf("trop de liens (%d, maximum %d)", len(links), maxPostLinks))
	}

	return ModerationVerdict{Text: text, Approved: len(flags) == 0, Flags: flags}
}
