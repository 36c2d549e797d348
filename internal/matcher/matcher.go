// Package matcher resolves free-text item names to catalog entries.
package matcher

import (
	"github.com/siddharthshetty008/restoAnalyze/internal/catalog"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

const (
	MinScore    = 0.6
	HighScore   = 0.8
	MediumScore = 0.7
)

// Result is the outcome of matching one name. Item is nil when Confidence is
// ESTIMATED.
type Result struct {
	Item       *models.MenuItem
	Confidence models.Confidence
	Score      float64
}

func (r Result) Found() bool { return r.Item != nil }

// Match resolves itemName against c. It has no state beyond the catalog and
// returns the same result for the same inputs.
func Match(itemName string, c *catalog.Catalog) Result {
	if item, ok := c.LookupExact(itemName); ok {
		return Result{Item: item, Confidence: models.ConfidenceHigh, Score: 1.0}
	}

	query := catalog.Tokens(itemName)
	var (
		best      *models.MenuItem
		bestScore float64
	)
	for _, cand := range c.Candidates() {
		item := cand.Item
		score := jaccard(query, cand.Tokens)
		if score < MinScore {
			continue
		}
		// ties go to the cheaper item, then to the earlier catalog entry
		if best == nil || score > bestScore || (score == bestScore && item.Price.LessThan(best.Price)) {
			best, bestScore = item, score
		}
	}

	if best == nil {
		return Result{Confidence: models.ConfidenceEstimated, Score: 0}
	}
	return Result{Item: best, Confidence: grade(bestScore), Score: bestScore}
}

func grade(score float64) models.Confidence {
	switch {
	case score >= HighScore:
		return models.ConfidenceHigh
	case score >= MediumScore:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// Similarity is the Jaccard score of the cleaned, whitespace-tokenized forms of a and b.
func Similarity(a, b string) float64 {
	return jaccard(catalog.Tokens(a), catalog.Tokens(b))
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
