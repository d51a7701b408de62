package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/earningstracker/pkg/models"
)

func TestAnalyzeHeadlineBullish(t *testing.T) {
	assert.Equal(t, models.SentimentBullish, AnalyzeHeadline("Company beats estimates and shares surge"))
}

func TestAnalyzeHeadlineBearish(t *testing.T) {
	assert.Equal(t, models.SentimentBearish, AnalyzeHeadline("Shares plunge after miss"))
}

func TestAnalyzeHeadlineNeutral(t *testing.T) {
	assert.Equal(t, models.SentimentNeutral, AnalyzeHeadline("Quarterly update released"))
	assert.Equal(t, models.SentimentNeutral, AnalyzeHeadline(""))
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		want     int
	}{
		{"no keywords", "Board meets on Tuesday", 0},
		{"beat and beats both match", "Apple BEATS forecasts", 2},
		{"repeated keyword counts once", "Surge, surge, surge", 1},
		{"mixed cancels", "Revenue beat but guidance warning", 0},
		{"substring match", "Sunrise Inc. reports", 1},
		{"all negatives", "miss fall plunge drop decline warning", -6},
		{"all positives", "beats surge rise soar record gain", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.headline))
		})
	}
}

func TestSummarize(t *testing.T) {
	items := []models.NewsItem{
		{"title": "Company beats estimates", "uuid": "1"},
		{"title": "Shares plunge after miss", "uuid": "2"},
		{"title": "Record revenue lifts stock", "uuid": "3"},
		{"uuid": "4"},
	}

	sum := Summarize(items)

	require.Len(t, sum.Headlines, 4)
	assert.Equal(t, models.SentimentBullish, sum.Headlines[0]["sentiment"])
	assert.Equal(t, models.SentimentBearish, sum.Headlines[1]["sentiment"])
	assert.Equal(t, models.SentimentBullish, sum.Headlines[2]["sentiment"])
	assert.Equal(t, models.SentimentNeutral, sum.Headlines[3]["sentiment"])
	assert.Equal(t, "3", sum.Headlines[2]["uuid"])

	assert.Equal(t, 2, sum.Counts[models.SentimentBullish])
	assert.Equal(t, 1, sum.Counts[models.SentimentBearish])
	assert.Equal(t, 1, sum.Counts[models.SentimentNeutral])
	assert.Equal(t, models.SentimentBullish, sum.Overall)

	for _, item := range items {
		_, ok := item["sentiment"]
		assert.False(t, ok, "input item %v was mutated", item["uuid"])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	assert.Equal(t, models.SentimentNeutral, sum.Overall)
	assert.NotNil(t, sum.Headlines)
	assert.Empty(t, sum.Headlines)
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name                 string
		bull, bear, neutral int
		want                 models.Sentiment
	}{
		{"bullish majority", 5, 1, 0, models.SentimentBullish},
		{"bearish majority", 1, 3, 2, models.SentimentBearish},
		{"bull bear tie", 4, 4, 2, models.SentimentNeutral},
		{"bull ties neutral", 3, 0, 3, models.SentimentNeutral},
		{"neutral majority", 1, 1, 5, models.SentimentNeutral},
		{"all zero", 0, 0, 0, models.SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overall(map[models.Sentiment]int{
				models.SentimentBullish: tt.bull,
				models.SentimentBearish: tt.bear,
				models.SentimentNeutral: tt.neutral,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}
