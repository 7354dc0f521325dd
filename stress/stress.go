// Package stress implements the scoring core: mapping text emotion verdicts
// onto a stress scale, fusing them with acoustic descriptors, and picking an
// activity suggestion. Every function is pure and total; degraded inputs map
// to documented defaults, never to errors.
package stress

import "math"

// Verdict is the output of an external text emotion classifier.
type Verdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Descriptors are the three normalized acoustic features, each on [0,100].
type Descriptors struct {
	Loudness   float64 `json:"loudness" bson:"loudness"`
	Brightness float64 `json:"brightness" bson:"brightness"`
	Tempo      float64 `json:"tempo" bson:"tempo"`
}

// NeutralDescriptors is the fallback when decoding or feature extraction
// fails; it leaves the fused score equal to the text score.
func NeutralDescriptors() Descriptors {
	return Descriptors{Loudness: 50, Brightness: 50, Tempo: 50}
}

const (
	// DefaultEmotion and DefaultTextScore apply when there is no transcript
	// or the classifier is unavailable.
	DefaultEmotion   = "neutral"
	DefaultTextScore = 30.0

	// Base stress for emotion labels outside the known table.
	unknownEmotionBase = 50.0
)

// emotionBase maps classifier labels to base stress values before
// confidence weighting.
var emotionBase = map[string]float64{
	"joy":      10,
	"neutral":  30,
	"surprise": 40,
	"sadness":  50,
	"fear":     80,
	"anger":    90,
}

// TextScore maps a classifier verdict onto [0,100]. Confidence scales the
// base value, so a tentative "anger" contributes far less than a certain one.
func TextScore(v Verdict) float64 {
	base, ok := emotionBase[v.Label]
	if !ok {
		base = unknownEmotionBase
	}
	return clip(base*v.Confidence, 0, 100)
}

// DefaultVerdict is what the pipeline scores when transcription produced no
// text or the classifier could not run.
func DefaultVerdict() Verdict {
	return Verdict{Label: DefaultEmotion, Confidence: 1}
}

// Fusion modes. Additive is the system contract; weighted is kept as a
// selectable alternative rather than silently merged.
const (
	ModeAdditive = "additive"
	ModeWeighted = "weighted"
)

// FusionWeights holds the tunable fusion constants.
type FusionWeights struct {
	Mode string

	// Additive mode: per-descriptor mix for the voice influence term, and
	// the total swing the voice signal can apply around a neutral voice.
	Loudness   float64
	Brightness float64
	Tempo      float64
	Swing      float64

	// Weighted mode: blend between the text score and an audio-only score.
	Text  float64
	Audio float64
}

// DefaultFusionWeights returns the calibrated defaults: voice mix
// 0.4/0.4/0.2 with a ±30 point swing, and a 0.6/0.4 text/audio blend.
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{
		Mode:       ModeAdditive,
		Loudness:   0.4,
		Brightness: 0.4,
		Tempo:      0.2,
		Swing:      60,
		Text:       0.6,
		Audio:      0.4,
	}
}

// VoiceInfluence collapses the three descriptors into a single [0,1] term;
// 0.5 is a neutral voice.
func VoiceInfluence(d Descriptors, w FusionWeights) float64 {
	return (d.Loudness*w.Loudness + d.Brightness*w.Brightness + d.Tempo*w.Tempo) / 100.0
}

// Fuse combines the text stress score with the acoustic descriptors into the
// final score, clipped to [0,100] and rounded to one decimal place.
func Fuse(textScore float64, d Descriptors, w FusionWeights) float64 {
	var fused float64
	switch w.Mode {
	case ModeWeighted:
		audio := (d.Loudness + d.Brightness + d.Tempo) / 3.0
		fused = textScore*w.Text + audio*w.Audio
	default:
		fused = textScore + (VoiceInfluence(d, w)-0.5)*w.Swing
	}
	return round1(clip(fused, 0, 100))
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
