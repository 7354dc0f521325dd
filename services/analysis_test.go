package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"zenzone/config"
	"zenzone/stress"
)

func initBareService(t *testing.T) {
	t.Helper()

	// Minimal config: no Gemini key, no speech service, no database. Every
	// pipeline stage must degrade to its documented default.
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 5000\n"), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load test config: %v", err)
	}
	InitAnalysisService(cfg)
}

func TestAnalyzeRecordingTotalUpstreamFailure(t *testing.T) {
	initBareService(t)

	// Missing file: no transcript, no classifier, neutral descriptors.
	result := GetAnalysisService().AnalyzeRecording(context.Background(), "missing.webm", "")
	if result == nil {
		t.Fatal("AnalyzeRecording returned nil under upstream failure")
	}
	if result.Text != "" {
		t.Errorf("Expected empty transcript, got %q", result.Text)
	}
	if result.Emotion != "neutral" {
		t.Errorf("Expected neutral emotion, got %q", result.Emotion)
	}
	if result.StressScore != stress.DefaultTextScore {
		t.Errorf("Expected default score %v, got %v", stress.DefaultTextScore, result.StressScore)
	}
	if result.AudioFeatures != stress.NeutralDescriptors() {
		t.Errorf("Expected neutral descriptors, got %+v", result.AudioFeatures)
	}
	if result.Suggestion.Title != "Slightly Tense" || result.Suggestion.Action != "breathing" {
		t.Errorf("Expected Slightly Tense band for score 30, got %+v", result.Suggestion)
	}
	if result.FriendlyLabel != result.Suggestion.Title {
		t.Errorf("Friendly label %q should match band title %q", result.FriendlyLabel, result.Suggestion.Title)
	}
}

func TestAnalyzeRecordingIdempotent(t *testing.T) {
	initBareService(t)

	svc := GetAnalysisService()
	first := svc.AnalyzeRecording(context.Background(), "missing.webm", "")
	second := svc.AnalyzeRecording(context.Background(), "missing.webm", "")
	if *first != *second {
		t.Errorf("Repeated analysis differs: %+v vs %+v", first, second)
	}
}

func TestScoreSamplesEmptyStream(t *testing.T) {
	initBareService(t)

	score, descriptors := GetAnalysisService().ScoreSamples(nil)
	if descriptors != stress.NeutralDescriptors() {
		t.Errorf("Empty stream descriptors = %+v, want neutral", descriptors)
	}
	if score != stress.DefaultTextScore {
		t.Errorf("Empty stream interim score = %v, want %v", score, stress.DefaultTextScore)
	}
}

func TestScoreSamplesBounded(t *testing.T) {
	initBareService(t)

	svc := GetAnalysisService()
	samples := make([]float64, 22050)
	for i := range samples {
		samples[i] = 0.9 // hot signal, loudness should clip at the top
	}
	score, descriptors := svc.ScoreSamples(samples)
	if score < 0 || score > 100 {
		t.Errorf("Interim score %v outside [0,100]", score)
	}
	if descriptors.Loudness != 100 {
		t.Errorf("Hot signal loudness = %v, want clipped 100", descriptors.Loudness)
	}
}
