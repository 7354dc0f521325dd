package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"zenzone/stress"
)

// Classifier produces an emotion verdict for a transcript. Implementations
// may be slow or unavailable; callers must treat failure as the neutral
// default, never as a request error.
type Classifier interface {
	Classify(ctx context.Context, text string) (stress.Verdict, error)
}

// GeminiClassifier asks the shared Gemini model for an emotion label and
// confidence in strict JSON.
type GeminiClassifier struct{}

func (GeminiClassifier) Classify(ctx context.Context, text string) (stress.Verdict, error) {
	prompt := fmt.Sprintf(
		`Classify the dominant emotion of the following spoken utterance.
Choose the single best label from: joy, sadness, anger, fear, surprise, neutral.

Utterance: %q

Required Output Format (JSON):
{
  "label": "one of the labels above",
  "confidence": 0.0
}

"confidence" is your certainty between 0 and 1. Provide ONLY the JSON output without additional text or markdown formatting.`,
		text,
	)

	response, err := generateModelText(ctx, textPart(prompt))
	if err != nil {
		return stress.Verdict{}, fmt.Errorf("failed to classify emotion: %w", err)
	}

	var verdict stress.Verdict
	if err := json.Unmarshal([]byte(response), &verdict); err != nil {
		return stress.Verdict{}, fmt.Errorf("invalid classifier output: %w", err)
	}

	verdict.Label = strings.ToLower(strings.TrimSpace(verdict.Label))
	if verdict.Confidence < 0 {
		verdict.Confidence = 0
	}
	if verdict.Confidence > 1 {
		verdict.Confidence = 1
	}
	return verdict, nil
}
