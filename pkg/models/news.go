package models

// Sentiment is the directional label attached to a headline.
type Sentiment string

const (
	SentimentBullish Sentiment = "Bullish"
	SentimentBearish Sentiment = "Bearish"
	SentimentNeutral Sentiment = "Neutral"
)

// NewsItem holds the fields a news provider returned for one article.
// Keys are passed through untouched; "title" and "sentiment" are the only
// ones this service reads or writes.
type NewsItem map[string]any

// Title returns the item's headline, or "" when absent.
func (n NewsItem) Title() string {
	if s, ok := n["title"].(string); ok {
		return s
	}
	return ""
}

// WithSentiment returns a copy of the item annotated with s.
// The receiver is left unchanged.
func (n NewsItem) WithSentiment(s Sentiment) NewsItem {
	out := make(NewsItem, len(n)+1)
	for k, v := range n {
		out[k] = v
	}
	out["sentiment"] = s
	return out
}

// SentimentSummary is the result of scoring a set of headlines.
type SentimentSummary struct {
	Overall   Sentiment         `json:"overall"`
	Headlines []NewsItem        `json:"headlines"`
	Counts    map[Sentiment]int `json:"counts"`
}

// SentimentReport is the per-ticker response served over HTTP.
type SentimentReport struct {
	Ticker           string     `json:"ticker"`
	OverallSentiment Sentiment  `json:"overall_sentiment"`
	Headlines        []NewsItem `json:"headlines"`
}
