package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		declared []string
		want     []string
	}{
		{"typo", "adress", []string{"address", "email", "name"}, []string{"address"}},
		{"missing prefix", "mail", []string{"email", "name", "id"}, []string{"email"}},
		{"case only", "EMAIL", []string{"email", "name"}, []string{"email"}},
		{"nothing close", "xyz", []string{"email", "address"}, nil},
		{"nothing declared", "email", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.target, tt.declared))
		})
	}
}

func TestSuggest_Limit(t *testing.T) {
	got := Suggest("name", []string{"name1", "name2", "name3", "name4", "name5"})
	assert.Len(t, got, DefaultLimit)
	assert.Equal(t, []string{"name1", "name2", "name3"}, got)
}

func TestRankCandidates(t *testing.T) {
	ranked := RankCandidates("ab", []string{"ac", "aa", "ac", ""})
	require.Len(t, ranked, 2)

	assert.Equal(t, []string{"aa", "ac"}, ranked.Names())
	assert.InDelta(t, 0.5, ranked[0].Score, 1e-9)
	assert.Equal(t, "aa", ranked.Best().Name)

	assert.Nil(t, CandidateList{}.Best())
	assert.Nil(t, CandidateList{}.Names())
	assert.Empty(t, ranked.AboveThreshold(0.9))
}
