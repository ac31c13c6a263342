package samples

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cet = time.FixedZone("CET", 60*60)

func TestSamplesGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, s := range All(time.Date(2023, 11, 23, 9, 30, 0, 0, cet)) {
		t.Run(s.Name, func(t *testing.T) {
			g.Assert(t, s.Name, []byte(s.Filter))
		})
	}
}

func TestSampleNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range All(time.Now()) {
		require.False(t, seen[s.Name], "duplicate sample %s", s.Name)
		seen[s.Name] = true
		assert.NotEmpty(t, s.Description)
	}
}

func TestGroupAndChainAgree(t *testing.T) {
	byName := map[string]string{}
	for _, s := range All(time.Date(2023, 11, 23, 0, 0, 0, 0, time.UTC)) {
		byName[s.Name] = s.Filter
	}

	assert.Equal(t, "("+byName["and_chain"]+")", byName["all_group"])
	assert.Equal(t, "("+byName["or_chain"]+")", byName["some_group"])
	assert.Equal(t, byName["some_group"], byName["in_list"])
}
