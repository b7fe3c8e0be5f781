package model

// Sentiment labels the model is prompted to choose from. Anything else that
// comes back (or nothing at all) is reported as "unknown".
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	SentimentMixed    = "mixed"
	SentimentUnknown  = "unknown"
)

type SummaryResult struct {
	Summary   string   `json:"summary"`
	Sentiment string   `json:"sentiment"`
	Insights  []string `json:"insights"`
}
