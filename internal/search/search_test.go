package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbbreviation(t *testing.T) {
	tests := map[string]string{
		"Half-Life 2":                      "HL2",
		"Portal 2":                         "P2",
		"Portal":                           "",
		"Counter-Strike: Global Offensive": "CSGO",
		"Dr. Langeskov":                    "DL",
		"  ":                               "",
		"tom clancy's rainbow six":         "TCRS",
	}
	for in, want := range tests {
		assert.Equal(t, want, Abbreviation(in), in)
	}
}

func indexes(ms []Match) []int {
	out := make([]int, len(ms))
	for i, m := range ms {
		out[i] = m.Index
	}
	return out
}

var titles = []string{
	"Half-Life 2",
	"Portal 2",
	"Team Fortress 2",
	"Counter-Strike: Global Offensive",
	"Terraria",
}

func TestFilter_EmptyQueryMatchesAll(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3, 4}, indexes(Filter("  ", titles)))
}

func TestFilter_ByName(t *testing.T) {
	ms := Filter("portal", titles)
	require.Len(t, ms, 1)
	assert.Equal(t, 1, ms[0].Index)
	assert.False(t, ms[0].Abbreviation)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ms[0].MatchedIndexes)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	assert.Equal(t, []int{4}, indexes(Filter("TERRAR", titles)))
}

func TestFilter_ByAbbreviation(t *testing.T) {
	assert.Equal(t, []int{3}, indexes(Filter("csgo", titles)))
	assert.Equal(t, []int{0}, indexes(Filter("hl2", titles)))
}

func TestFilter_TokensInAnyOrder(t *testing.T) {
	assert.Equal(t, []int{2}, indexes(Filter("fortress team", titles)))
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, Filter("zzzz", titles))
}

func TestFilter_ResultsInInputOrder(t *testing.T) {
	ms := Filter("2", titles)
	assert.Equal(t, []int{0, 1, 2}, indexes(ms))
}
