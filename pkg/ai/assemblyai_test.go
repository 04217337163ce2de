package ai

import (
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

func sentiments(types ...aai.Sentiment) []aai.SentimentAnalysisResult {
	results := make([]aai.SentimentAnalysisResult, len(types))
	for i, st := range types {
		results[i] = aai.SentimentAnalysisResult{Sentiment: st}
	}
	return results
}

func TestDominantSentiment_MostFrequentWins(t *testing.T) {
	got := dominantSentiment(sentiments("POSITIVE", "POSITIVE", "NEGATIVE"))
	if got != "positive" {
		t.Fatalf("expected positive, got %s", got)
	}

	got = dominantSentiment(sentiments("NEGATIVE", "NEGATIVE", "NEUTRAL"))
	if got != "negative" {
		t.Fatalf("expected negative, got %s", got)
	}
}

func TestDominantSentiment_EmptyDefaultsToNeutral(t *testing.T) {
	if got := dominantSentiment(nil); got != "neutral" {
		t.Fatalf("expected neutral, got %s", got)
	}
}

func TestDominantSentiment_UnknownLabelFallsBackToNeutral(t *testing.T) {
	if got := dominantSentiment(sentiments("MIXED")); got != "neutral" {
		t.Fatalf("expected neutral, got %s", got)
	}
}
