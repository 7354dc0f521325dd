package config

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFrom(t *testing.T, yml string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func TestLoadConfigAppliesCalibrationDefaults(t *testing.T) {
	cfg := loadFrom(t, "server:\n  port: 8080\n")

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Audio.SampleRate != 22050 {
		t.Errorf("SampleRate default = %d, want 22050", cfg.Audio.SampleRate)
	}
	if cfg.Audio.RMSNorm != 0.02 || cfg.Audio.CentroidNorm != 2000 || cfg.Audio.TempoNorm != 180 {
		t.Errorf("Calibration defaults = %v/%v/%v, want 0.02/2000/180",
			cfg.Audio.RMSNorm, cfg.Audio.CentroidNorm, cfg.Audio.TempoNorm)
	}
	if cfg.Fusion.Mode != "additive" || cfg.Fusion.Swing != 60 {
		t.Errorf("Fusion defaults = %q/%v, want additive/60", cfg.Fusion.Mode, cfg.Fusion.Swing)
	}
	if cfg.Fusion.LoudnessWeight != 0.4 || cfg.Fusion.BrightWeight != 0.4 || cfg.Fusion.TempoWeight != 0.2 {
		t.Errorf("Voice mix defaults = %v/%v/%v, want 0.4/0.4/0.2",
			cfg.Fusion.LoudnessWeight, cfg.Fusion.BrightWeight, cfg.Fusion.TempoWeight)
	}
	if cfg.Suggestions.CalmMax != 25 || cfg.Suggestions.TenseMax != 50 || cfg.Suggestions.StressedMax != 75 {
		t.Errorf("Threshold defaults = %v/%v/%v, want 25/50/75",
			cfg.Suggestions.CalmMax, cfg.Suggestions.TenseMax, cfg.Suggestions.StressedMax)
	}
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	cfg := loadFrom(t, `
audio:
  sampleRate: 16000
  rmsNorm: 0.05
fusion:
  mode: weighted
  textWeight: 0.7
  audioWeight: 0.3
`)

	if cfg.Audio.SampleRate != 16000 || cfg.Audio.RMSNorm != 0.05 {
		t.Errorf("Explicit audio values overridden: %+v", cfg.Audio)
	}
	if cfg.Fusion.Mode != "weighted" || cfg.Fusion.TextWeight != 0.7 || cfg.Fusion.AudioWeight != 0.3 {
		t.Errorf("Explicit fusion values overridden: %+v", cfg.Fusion)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
