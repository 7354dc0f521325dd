package services

import (
	"context"
	"log"
	"time"

	"zenzone/audio"
	"zenzone/config"
	"zenzone/db"
	"zenzone/models"
	"zenzone/stress"
)

// AnalysisService runs the full scoring pipeline for one utterance:
// transcription, emotion classification, acoustic feature extraction, fusion
// and suggestion selection. It holds no per-request state; concurrent
// analyses are independent.
type AnalysisService struct {
	extractor   *audio.Extractor
	transcriber Transcriber
	classifier  Classifier
	fusion      stress.FusionWeights
	thresholds  stress.Thresholds
	uploadDir   string
}

var analysisService *AnalysisService

// InitAnalysisService wires the pipeline from config. A missing Gemini key or
// speech service degrades the corresponding stage to its neutral default
// instead of blocking startup.
func InitAnalysisService(cfg *config.Config) {
	if err := initGemini(cfg.Gemini.ApiKey, cfg.Gemini.Model); err != nil {
		log.Printf("Gemini unavailable, text analysis will use neutral defaults: %v", err)
	}

	var transcriber Transcriber
	switch cfg.Speech.Provider {
	case "gemini":
		transcriber = GeminiTranscriber{}
	default:
		if cfg.Speech.URL != "" {
			transcriber = NewWhisperClient(cfg.Speech.URL)
		} else if geminiClient != nil {
			log.Printf("No speech service configured, transcribing through Gemini")
			transcriber = GeminiTranscriber{}
		} else {
			log.Printf("No transcription backend available, analyses will be voice-only")
		}
	}

	var classifier Classifier
	if geminiClient != nil {
		classifier = GeminiClassifier{}
	}

	analysisService = &AnalysisService{
		extractor: audio.NewExtractor(cfg.Audio.FFmpegBin, audio.Calibration{
			SampleRate:   cfg.Audio.SampleRate,
			RMSNorm:      cfg.Audio.RMSNorm,
			CentroidNorm: cfg.Audio.CentroidNorm,
			TempoNorm:    cfg.Audio.TempoNorm,
		}),
		transcriber: transcriber,
		classifier:  classifier,
		fusion: stress.FusionWeights{
			Mode:       cfg.Fusion.Mode,
			Loudness:   cfg.Fusion.LoudnessWeight,
			Brightness: cfg.Fusion.BrightWeight,
			Tempo:      cfg.Fusion.TempoWeight,
			Swing:      cfg.Fusion.Swing,
			Text:       cfg.Fusion.TextWeight,
			Audio:      cfg.Fusion.AudioWeight,
		},
		thresholds: stress.Thresholds{
			CalmMax:     cfg.Suggestions.CalmMax,
			TenseMax:    cfg.Suggestions.TenseMax,
			StressedMax: cfg.Suggestions.StressedMax,
		},
		uploadDir: cfg.Audio.UploadDir,
	}
}

func GetAnalysisService() *AnalysisService {
	if analysisService == nil {
		panic("analysis service not initialized")
	}
	return analysisService
}

func (s *AnalysisService) UploadDir() string { return s.uploadDir }

// SampleRate exposes the calibrated rate for the live streaming endpoint.
func (s *AnalysisService) SampleRate() int { return s.extractor.Cal.SampleRate }

// AnalyzeRecording scores one recorded utterance and persists the session.
// Every upstream failure degrades to a documented default, so a well-formed
// result is always returned.
func (s *AnalysisService) AnalyzeRecording(ctx context.Context, audioPath, userID string) *models.AnalysisResult {
	text := s.transcribe(ctx, audioPath)

	verdict, textScore := s.scoreText(ctx, text)

	descriptors := s.extractor.DescriptorsFromFile(audioPath)

	finalScore := stress.Fuse(textScore, descriptors, s.fusion)
	suggestion := stress.SuggestionFor(finalScore, s.thresholds)

	result := &models.AnalysisResult{
		Text:          text,
		Emotion:       verdict.Label,
		FriendlyLabel: suggestion.Title,
		StressScore:   finalScore,
		Suggestion:    suggestion,
		AudioFeatures: descriptors,
	}

	s.persist(userID, result)
	return result
}

// ScoreSamples computes an interim acoustic-only stress snapshot for audio
// still being streamed; the text term sits at its neutral default until the
// recording is finalized.
func (s *AnalysisService) ScoreSamples(samples []float64) (float64, stress.Descriptors) {
	descriptors := audio.DescriptorsFromSamples(samples, s.extractor.Cal.SampleRate, s.extractor.Cal)
	return stress.Fuse(stress.DefaultTextScore, descriptors, s.fusion), descriptors
}

func (s *AnalysisService) transcribe(ctx context.Context, audioPath string) string {
	if s.transcriber == nil {
		return ""
	}
	text, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		log.Printf("Transcription failed, continuing without text: %v", err)
		return ""
	}
	if text == "" {
		log.Printf("No speech detected in %s", audioPath)
	}
	return text
}

func (s *AnalysisService) scoreText(ctx context.Context, text string) (stress.Verdict, float64) {
	if text == "" || s.classifier == nil {
		return stress.DefaultVerdict(), stress.DefaultTextScore
	}
	verdict, err := s.classifier.Classify(ctx, text)
	if err != nil {
		log.Printf("Emotion classification failed, using neutral default: %v", err)
		return stress.DefaultVerdict(), stress.DefaultTextScore
	}
	return verdict, stress.TextScore(verdict)
}

// persist records the session best-effort; storage trouble never fails an
// analysis that already produced a result.
func (s *AnalysisService) persist(userID string, result *models.AnalysisResult) {
	if userID == "" {
		userID = "anonymous"
	}
	session := models.Session{
		UserID:          userID,
		Timestamp:       time.Now().UTC(),
		StressScore:     result.StressScore,
		Emotion:         result.Emotion,
		Transcript:      result.Text,
		AudioFeatures:   result.AudioFeatures,
		SuggestedAction: result.Suggestion.Action,
	}
	if err := db.SaveSession(session); err != nil {
		log.Printf("Session insert failed: %v", err)
	}
}
