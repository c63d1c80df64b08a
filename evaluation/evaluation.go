// Package evaluation provides output scoring heuristics. The ecosystem
// paradigm uses a Scorer to decide which generation outputs are retained as
// seed context for the next generation; anything scoring below the retention
// threshold is discarded.
package evaluation

import (
	"fmt"
	"strings"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/internal/textutil"
)

// RetentionThreshold is the score at or above which an output is retained.
// Scorers normalize so that 1.0 marks the configured target.
const RetentionThreshold = 1.0

// DefaultMinLength is the LengthScorer minimum when none is configured.
const DefaultMinLength = 80

// DefaultKeywordTarget is the keyword density at which KeywordScorer scores 1.0.
const DefaultKeywordTarget = 0.1

// Scorer judges the fitness of a single agent output. Implementations must be
// pure functions of the content; the same input always yields the same score.
type Scorer interface {
	Score(content string) float64
}

// LengthScorer scores by content length normalized against a minimum: an
// output of exactly Min runes scores 1.0, shorter outputs score
// proportionally below the retention threshold.
type LengthScorer struct {
	// Min is the length (in runes, whitespace-trimmed) that scores 1.0.
	// Zero or negative falls back to DefaultMinLength.
	Min int
}

// Score implements the Scorer interface.
func (s LengthScorer) Score(content string) float64 {
	min := s.Min
	if min <= 0 {
		min = DefaultMinLength
	}
	n := len([]rune(strings.TrimSpace(content)))
	return float64(n) / float64(min)
}

// KeywordScorer scores by the density of configured keywords, normalized
// against a target density: content hitting the target scores exactly 1.0.
type KeywordScorer struct {
	Keywords []string

	// Target is the keyword density scoring 1.0. Zero or negative falls back
	// to DefaultKeywordTarget.
	Target float64
}

// Score implements the Scorer interface.
func (s KeywordScorer) Score(content string) float64 {
	target := s.Target
	if target <= 0 {
		target = DefaultKeywordTarget
	}
	return textutil.KeywordDensity(content, s.Keywords) / target
}

// FromConfig builds a Scorer from configuration primitives. Known heuristics
// are "length" and "keywords"; the empty string selects the default length
// heuristic.
func FromConfig(heuristic string, minLength int, keywords []string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(heuristic)) {
	case "", "length":
		return LengthScorer{Min: minLength}, nil
	case "keywords":
		return KeywordScorer{Keywords: keywords}, nil
	default:
		return nil, fmt.Errorf("unknown retention heuristic %q", heuristic)
	}
}
