package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var geminiClient *genai.Client
var geminiModelName = "gemini-1.5-flash"

func initGemini(apiKey, modelName string) error {
	if apiKey == "" {
		return errors.New("gemini api key not configured")
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return err
	}
	geminiClient = client
	if modelName != "" {
		geminiModelName = modelName
	}
	return nil
}

// generateModelText sends a prompt to the configured Gemini model and returns
// the first text part of the response.
func generateModelText(ctx context.Context, parts ...genai.Part) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}
	model := geminiClient.GenerativeModel(geminiModelName)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty model response")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return cleanModelOutput(string(text)), nil
		}
	}
	return "", errors.New("no text in model response")
}

func textPart(s string) genai.Part { return genai.Text(s) }

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
