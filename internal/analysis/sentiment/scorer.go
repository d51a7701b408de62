// Package sentiment labels news headlines by keyword presence.
package sentiment

import (
	"strings"

	"github.com/seenimoa/earningstracker/pkg/models"
)

// ------------------------------------------------------------------
// Keyword-based headline scorer. Matching is by lowercase substring,
// so "rise" also fires on "sunrise".
// ------------------------------------------------------------------

var positiveWords = [...]string{"beat", "beats", "surge", "rise", "soar", "record", "gain"}

var negativeWords = [...]string{"miss", "fall", "plunge", "drop", "decline", "warning"}

// Score returns the net keyword score of a headline: +1 for each positive
// keyword present and -1 for each negative keyword present. A keyword
// counts once however often it occurs.
func Score(headline string) int {
	lower := strings.ToLower(headline)

	score := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score--
		}
	}
	return score
}

// AnalyzeHeadline labels a single headline.
func AnalyzeHeadline(headline string) models.Sentiment {
	switch s := Score(headline); {
	case s > 0:
		return models.SentimentBullish
	case s < 0:
		return models.SentimentBearish
	default:
		return models.SentimentNeutral
	}
}

// Summarize labels every item by its title and derives the overall label.
// Headlines are annotated copies in input order; items are not modified.
func Summarize(items []models.NewsItem) models.SentimentSummary {
	counts := map[models.Sentiment]int{
		models.SentimentBullish: 0,
		models.SentimentBearish: 0,
		models.SentimentNeutral: 0,
	}

	headlines := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		s := AnalyzeHeadline(item.Title())
		counts[s]++
		headlines = append(headlines, item.WithSentiment(s))
	}

	return models.SentimentSummary{
		Overall:   Overall(counts),
		Headlines: headlines,
		Counts:    counts,
	}
}

// Overall picks the label with a strict majority over each of the other
// two. Ties, including the all-zero case, resolve to Neutral.
func Overall(counts map[models.Sentiment]int) models.Sentiment {
	bull := counts[models.SentimentBullish]
	bear := counts[models.SentimentBearish]
	neutral := counts[models.SentimentNeutral]

	switch {
	case bull > max(bear, neutral):
		return models.SentimentBullish
	case bear > max(bull, neutral):
		return models.SentimentBearish
	default:
		return models.SentimentNeutral
	}
}
