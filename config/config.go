package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Speech struct {
		// Provider selects the transcription backend: "whisper" for an
		// HTTP whisper service, "gemini" to transcribe through the Gemini API.
		Provider string `yaml:"provider"`
		URL      string `yaml:"url"`
	} `yaml:"speech"`

	Audio struct {
		FFmpegBin  string `yaml:"ffmpegBin"`
		SampleRate int    `yaml:"sampleRate"`
		UploadDir  string `yaml:"uploadDir"`

		// Calibration denominators mapping raw feature means onto 0-100.
		// Tuned against typical speech, not physical constants.
		RMSNorm      float64 `yaml:"rmsNorm"`
		CentroidNorm float64 `yaml:"centroidNorm"`
		TempoNorm    float64 `yaml:"tempoNorm"`
	} `yaml:"audio"`

	Fusion struct {
		// Mode is "additive" (voice shifts the text score by a bounded
		// adjustment) or "weighted" (text/audio weighted average).
		Mode           string  `yaml:"mode"`
		LoudnessWeight float64 `yaml:"loudnessWeight"`
		BrightWeight   float64 `yaml:"brightnessWeight"`
		TempoWeight    float64 `yaml:"tempoWeight"`
		Swing          float64 `yaml:"swing"`
		TextWeight     float64 `yaml:"textWeight"`
		AudioWeight    float64 `yaml:"audioWeight"`
	} `yaml:"fusion"`

	Suggestions struct {
		CalmMax     float64 `yaml:"calmMax"`
		TenseMax    float64 `yaml:"tenseMax"`
		StressedMax float64 `yaml:"stressedMax"`
	} `yaml:"suggestions"`
}

// LoadConfig reads the configuration file and fills in defaults for
// anything the file leaves unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-flash"
	}
	if c.Speech.Provider == "" {
		c.Speech.Provider = "whisper"
	}
	if c.Audio.FFmpegBin == "" {
		c.Audio.FFmpegBin = "ffmpeg"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 22050
	}
	if c.Audio.RMSNorm == 0 {
		c.Audio.RMSNorm = 0.02
	}
	if c.Audio.CentroidNorm == 0 {
		c.Audio.CentroidNorm = 2000
	}
	if c.Audio.TempoNorm == 0 {
		c.Audio.TempoNorm = 180
	}
	if c.Fusion.Mode == "" {
		c.Fusion.Mode = "additive"
	}
	if c.Fusion.LoudnessWeight == 0 && c.Fusion.BrightWeight == 0 && c.Fusion.TempoWeight == 0 {
		c.Fusion.LoudnessWeight = 0.4
		c.Fusion.BrightWeight = 0.4
		c.Fusion.TempoWeight = 0.2
	}
	if c.Fusion.Swing == 0 {
		c.Fusion.Swing = 60
	}
	if c.Fusion.TextWeight == 0 && c.Fusion.AudioWeight == 0 {
		c.Fusion.TextWeight = 0.6
		c.Fusion.AudioWeight = 0.4
	}
	if c.Suggestions.CalmMax == 0 {
		c.Suggestions.CalmMax = 25
	}
	if c.Suggestions.TenseMax == 0 {
		c.Suggestions.TenseMax = 50
	}
	if c.Suggestions.StressedMax == 0 {
		c.Suggestions.StressedMax = 75
	}
}
