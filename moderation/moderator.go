// Package moderation censors forbidden words in user-authored text before
// it is recorded or forwarded to the response engine.
package moderation

import (
	serrors "baro-server/errors"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator matches a fixed word list with an Aho-Corasick automaton.
// Matching runs on a normalized view of the text (lowercased, punctuation
// and spacing stripped) while censoring is applied to the original runes,
// so "ba d-Word" still masks as expected.
type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

func NewModerator(words []string, replacement rune) (*Moderator, error) {
	if len(words) == 0 {
		return nil, serrors.ErrEmptyWords
	}

	patterns := make([][]rune, 0, len(words))
	for _, w := range words {
		norm, _ := normalize(w)
		if len(norm) > 0 {
			patterns = append(patterns, norm)
		}
	}
	if len(patterns) == 0 {
		return nil, serrors.ErrEmptyWords
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, replacement: replacement}, nil
}

// Censor replaces every matched span with the replacement rune and reports
// the matched words. The original text is returned untouched when nothing
// matches.
func (m *Moderator) Censor(original string) (string, []string) {
	norm, origIdx := normalize(original)
	if len(norm) == 0 {
		return original, nil
	}

	spans := m.matcher.MultiPatternSearch(norm, false)
	if len(spans) == 0 {
		return original, nil
	}

	runes := []rune(original)
	var found []string
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		found = append(found, string(span.Word))
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			runes[i] = m.replacement
		}
	}
	return string(runes), found
}

// normalize lowercases the input and drops punctuation, spacing, and
// symbols, keeping a rune-index mapping back to the original text.
func normalize(input string) ([]rune, []int) {
	orig := []rune(input)
	norm := make([]rune, 0, len(orig))
	origIdx := make([]int, 0, len(orig))
	for i, r := range orig {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return norm, origIdx
}
