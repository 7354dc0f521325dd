// Package audio decodes voice recordings and extracts the acoustic features
// the stress pipeline fuses with text emotion: frame RMS energy, spectral
// centroid, and an onset-based tempo estimate.
package audio

import (
	"log"
	"math"
	"math/cmplx"

	"zenzone/stress"
)

const (
	frameSize = 2048
	hopSize   = 512

	// Plausible speaking-rhythm range for the tempo tracker.
	minBPM = 30
	maxBPM = 240
)

// Calibration maps raw feature means onto the 0-100 descriptor scale.
type Calibration struct {
	SampleRate   int
	RMSNorm      float64
	CentroidNorm float64
	TempoNorm    float64
}

// DefaultCalibration returns the speech-tuned defaults.
func DefaultCalibration() Calibration {
	return Calibration{SampleRate: 22050, RMSNorm: 0.02, CentroidNorm: 2000, TempoNorm: 180}
}

// Features holds the raw (non-normalized) per-recording feature means.
type Features struct {
	RMS      float64 // mean frame RMS amplitude
	Centroid float64 // mean spectral centroid, Hz
	Tempo    float64 // estimated tempo, BPM
}

// Normalize maps raw features onto bounded descriptors.
func (f Features) Normalize(cal Calibration) stress.Descriptors {
	return stress.Descriptors{
		Loudness:   clip(f.RMS/cal.RMSNorm*100, 0, 100),
		Brightness: clip(f.Centroid/cal.CentroidNorm*100, 0, 100),
		Tempo:      clip(f.Tempo/cal.TempoNorm*100, 0, 100),
	}
}

// Extractor turns audio files into acoustic descriptors. Methods never fail:
// anything that goes wrong degrades to the neutral descriptor set.
type Extractor struct {
	FFmpegBin string
	Cal       Calibration
}

func NewExtractor(ffmpegBin string, cal Calibration) *Extractor {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	return &Extractor{FFmpegBin: ffmpegBin, Cal: cal}
}

// DescriptorsFromFile decodes an audio file (any ffmpeg-readable format) and
// returns its normalized descriptors, or the neutral set on any failure.
func (e *Extractor) DescriptorsFromFile(path string) stress.Descriptors {
	samples, sr, err := e.decode(path)
	if err != nil {
		log.Printf("audio: falling back to neutral descriptors for %s: %v", path, err)
		return stress.NeutralDescriptors()
	}
	return DescriptorsFromSamples(samples, sr, e.Cal)
}

// DescriptorsFromSamples computes normalized descriptors from an in-memory
// mono waveform. Empty or silent input yields the neutral set.
func DescriptorsFromSamples(samples []float64, sampleRate int, cal Calibration) stress.Descriptors {
	if len(samples) == 0 || sampleRate <= 0 {
		return stress.NeutralDescriptors()
	}
	return Analyze(samples, sampleRate).Normalize(cal)
}

// Analyze computes the raw feature means for a mono waveform.
func Analyze(samples []float64, sampleRate int) Features {
	return Features{
		RMS:      meanRMS(samples),
		Centroid: meanCentroid(samples, sampleRate),
		Tempo:    tempoBPM(samples, sampleRate),
	}
}

func meanRMS(samples []float64) float64 {
	n := 0
	total := 0.0
	for start := 0; start < len(samples); start += hopSize {
		end := start + frameSize
		if end > len(samples) {
			end = len(samples)
		}
		total += rms(samples[start:end])
		n++
		if end == len(samples) {
			break
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func rms(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// meanCentroid averages the Hann-windowed spectral centroid over all full
// frames. Frames with no spectral energy are skipped.
func meanCentroid(samples []float64, sampleRate int) float64 {
	n := 0
	total := 0.0
	for start := 0; start+frameSize <= len(samples); start += hopSize {
		c, ok := frameCentroid(samples[start:start+frameSize], sampleRate)
		if ok {
			total += c
			n++
		}
	}
	if n == 0 {
		// Short clip: analyze one zero-padded frame covering everything.
		if c, ok := frameCentroid(padToFrame(samples), sampleRate); ok {
			return c
		}
		return 0
	}
	return total / float64(n)
}

func frameCentroid(frame []float64, sampleRate int) (float64, bool) {
	n := len(frame)
	buf := make([]complex128, n)
	for i, s := range frame {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		buf[i] = complex(s*w, 0)
	}
	fft(buf)

	var weighted, total float64
	binHz := float64(sampleRate) / float64(n)
	for k := 0; k <= n/2; k++ {
		mag := cmplx.Abs(buf[k])
		weighted += float64(k) * binHz * mag
		total += mag
	}
	if total == 0 {
		return 0, false
	}
	return weighted / total, true
}

func padToFrame(samples []float64) []float64 {
	if len(samples) >= frameSize {
		return samples[:frameSize]
	}
	padded := make([]float64, frameSize)
	copy(padded, samples)
	return padded
}

// tempoBPM estimates tempo from the onset strength envelope: per-hop energy
// flux, autocorrelated over lags in the plausible BPM range. Returns 0 when
// the clip is too short to carry a periodicity estimate.
func tempoBPM(samples []float64, sampleRate int) float64 {
	var env []float64
	prev := 0.0
	for start := 0; start+frameSize <= len(samples); start += hopSize {
		e := 0.0
		for _, s := range samples[start : start+frameSize] {
			e += s * s
		}
		flux := e - prev
		if flux < 0 {
			flux = 0
		}
		env = append(env, flux)
		prev = e
	}
	if len(env) < 8 {
		return 0
	}

	mean := 0.0
	for _, v := range env {
		mean += v
	}
	mean /= float64(len(env))
	for i := range env {
		env[i] -= mean
	}

	frameRate := float64(sampleRate) / hopSize
	minLag := int(frameRate * 60 / maxBPM)
	maxLag := int(frameRate * 60 / minBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(env) {
		maxLag = len(env) - 1
	}
	if maxLag < minLag {
		return 0
	}

	bestLag, bestCorr := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		corr := 0.0
		for i := 0; i+lag < len(env); i++ {
			corr += env[i] * env[i+lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return 0
	}
	return 60 * frameRate / float64(bestLag)
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
