package ai

import (
	"context"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/hospitalvoice/booking-agent/pkg/config"
)

// Transcriber turns a recording URL into text plus overall sentiment
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (*TranscriptResult, error)
}

// TranscriptResult is the distilled transcription outcome
type TranscriptResult struct {
	Text      string
	Sentiment string
}

// AssemblyAIClient wraps the AssemblyAI SDK for call transcription
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client from config
func NewAssemblyAIClient(cfg *config.TranscriptionConfig) *AssemblyAIClient {
	return &AssemblyAIClient{
		client: aai.NewClient(cfg.APIKey),
	}
}

// Transcribe submits an audio URL and waits for the finished transcript
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (*TranscriptResult, error) {
	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		SentimentAnalysis: aai.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	result := &TranscriptResult{Sentiment: "neutral"}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	result.Sentiment = dominantSentiment(transcript.SentimentAnalysisResults)
	return result, nil
}

// dominantSentiment picks the most frequent sentence-level sentiment
func dominantSentiment(results []aai.SentimentAnalysisResult) string {
	counts := map[aai.Sentiment]int{}
	for _, r := range results {
		counts[r.Sentiment]++
	}

	best := "neutral"
	bestCount := 0
	for sentiment, count := range counts {
		if count > bestCount {
			best = string(sentiment)
			bestCount = count
		}
	}
	switch best {
	case "POSITIVE", "positive":
		return "positive"
	case "NEGATIVE", "negative":
		return "negative"
	default:
		return "neutral"
	}
}
