package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthScorer(t *testing.T) {
	s := LengthScorer{Min: 10}

	assert.Less(t, s.Score("short"), RetentionThreshold)
	assert.GreaterOrEqual(t, s.Score("exactly10!"), RetentionThreshold)
	assert.Zero(t, s.Score("   "))
}

func TestLengthScorer_DefaultMin(t *testing.T) {
	s := LengthScorer{}
	long := strings.Repeat("x", DefaultMinLength)

	assert.GreaterOrEqual(t, s.Score(long), RetentionThreshold)
	assert.Less(t, s.Score(long[:DefaultMinLength-1]), RetentionThreshold)
}

func TestKeywordScorer(t *testing.T) {
	s := KeywordScorer{Keywords: []string{"cache"}, Target: 0.5}

	assert.GreaterOrEqual(t, s.Score("cache cache miss"), RetentionThreshold)
	assert.Less(t, s.Score("one cache among many other words here"), RetentionThreshold)
	assert.Zero(t, s.Score("nothing relevant"))
}

func TestFromConfig(t *testing.T) {
	scorer, err := FromConfig("length", 40, nil)
	require.NoError(t, err)
	assert.IsType(t, LengthScorer{}, scorer)

	scorer, err = FromConfig("keywords", 0, []string{"cache"})
	require.NoError(t, err)
	assert.IsType(t, KeywordScorer{}, scorer)

	scorer, err = FromConfig("", 0, nil)
	require.NoError(t, err)
	assert.IsType(t, LengthScorer{}, scorer, "empty heuristic selects the default")

	_, err = FromConfig("vibes", 0, nil)
	assert.ErrorContains(t, err, "unknown retention heuristic")
}
