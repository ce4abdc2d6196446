// Package search matches a typed query against app titles.
package search

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Match is one title that satisfied the query.
type Match struct {
	Index          int   // Index in the titles slice
	Score          int   // Higher is better, 0 for abbreviation and empty-query matches
	MatchedIndexes []int // Byte offsets in the title, for highlighting
	Abbreviation   bool  // Matched through the title's abbreviation only
}

// titleIndex implements sahilm/fuzzy.Source. Matching there is case-insensitive.
type titleIndex []string

func (t titleIndex) String(i int) string { return t[i] }
func (t titleIndex) Len() int            { return len(t) }

// Filter returns the titles matching query, in the order they were given. A
// title matches when the query fuzzily matches the title itself or its
// abbreviation ("hl2" finds "Half-Life 2"). An empty query matches everything.
func Filter(query string, titles []string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		all := make([]Match, len(titles))
		for i := range titles {
			all[i] = Match{Index: i}
		}
		return all
	}

	byIndex := matchTokens(strings.Fields(query), titles)
	for i, t := range titles {
		if _, ok := byIndex[i]; ok {
			continue
		}
		abbr := Abbreviation(t)
		if abbr != "" && fuzzy.MatchFold(query, abbr) {
			byIndex[i] = Match{Index: i, Abbreviation: true}
		}
	}

	matches := make([]Match, 0, len(byIndex))
	for _, m := range byIndex {
		matches = append(matches, m)
	}
	slices.SortFunc(matches, func(a, b Match) int { return a.Index - b.Index })
	return matches
}

// matchTokens matches every query token on its own, in any order, so "life half"
// still finds "Half-Life". A title must match all tokens.
func matchTokens(tokens []string, titles []string) map[int]Match {
	var acc map[int]Match
	for _, tok := range tokens {
		next := map[int]Match{}
		for _, m := range sfuzzy.FindFromNoSort(tok, titleIndex(titles)) {
			if acc == nil {
				next[m.Index] = Match{Index: m.Index, Score: m.Score, MatchedIndexes: slices.Clone(m.MatchedIndexes)}
				continue
			}
			prev, ok := acc[m.Index]
			if !ok {
				continue
			}
			prev.Score += m.Score
			prev.MatchedIndexes = append(prev.MatchedIndexes, m.MatchedIndexes...)
			next[m.Index] = prev
		}
		acc = next
	}
	for i, m := range acc {
		slices.Sort(m.MatchedIndexes)
		m.MatchedIndexes = slices.Compact(m.MatchedIndexes)
		acc[i] = m
	}
	if acc == nil {
		acc = map[int]Match{}
	}
	return acc
}

// Abbreviation returns the upper-cased initials of a multi-word title, e.g.
// "Half-Life 2" gives "HL2" and "Portal 2" gives "P2". Single-word titles have
// no abbreviation.
func Abbreviation(title string) string {
	title = strings.ReplaceAll(title, "-", " ")
	title = strings.NewReplacer(":", "", ".", "").Replace(title)

	words := strings.Fields(title)
	if len(words) < 2 {
		return ""
	}

	var sb strings.Builder
	for _, w := range words {
		r := []rune(w)[0]
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}
