package audio

import (
	"math"
	"testing"

	"zenzone/stress"
)

func sine(freq float64, amp float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// clickTrain places short bursts at a fixed interval over a silent signal.
func clickTrain(intervalSec float64, seconds float64, sampleRate int) []float64 {
	out := make([]float64, int(seconds*float64(sampleRate)))
	step := int(intervalSec * float64(sampleRate))
	for start := 0; start < len(out); start += step {
		for i := start; i < start+hopSize && i < len(out); i++ {
			out[i] = 0.8
		}
	}
	return out
}

func TestMeanRMSOfSine(t *testing.T) {
	samples := sine(440, 0.02, 1.0, 22050)
	got := meanRMS(samples)
	want := 0.02 / math.Sqrt2
	if math.Abs(got-want) > 0.002 {
		t.Errorf("meanRMS of 0.02 sine = %v, want ~%v", got, want)
	}
}

func TestMeanRMSOfSilence(t *testing.T) {
	if got := meanRMS(make([]float64, 22050)); got != 0 {
		t.Errorf("meanRMS of silence = %v, want 0", got)
	}
}

func TestCentroidOfSine(t *testing.T) {
	samples := sine(1000, 0.5, 1.0, 22050)
	got := meanCentroid(samples, 22050)
	if math.Abs(got-1000) > 150 {
		t.Errorf("centroid of 1 kHz sine = %v Hz, want ~1000", got)
	}
}

func TestCentroidRisesWithFrequency(t *testing.T) {
	low := meanCentroid(sine(300, 0.5, 1.0, 22050), 22050)
	high := meanCentroid(sine(3000, 0.5, 1.0, 22050), 22050)
	if high <= low {
		t.Errorf("centroid should rise with frequency: low=%v high=%v", low, high)
	}
}

func TestTempoOfClickTrain(t *testing.T) {
	// Clicks every 0.5s ≈ 120 BPM.
	samples := clickTrain(0.5, 4.0, 22050)
	got := tempoBPM(samples, 22050)
	if got < 100 || got > 140 {
		t.Errorf("tempo of 120 BPM click train = %v", got)
	}
}

func TestTempoOfShortClip(t *testing.T) {
	if got := tempoBPM(make([]float64, 1024), 22050); got != 0 {
		t.Errorf("tempo of too-short clip = %v, want 0", got)
	}
}

func TestNormalizeCalibrationPoints(t *testing.T) {
	cal := DefaultCalibration()

	full := Features{RMS: 0.02, Centroid: 2000, Tempo: 180}.Normalize(cal)
	if full.Loudness != 100 || full.Brightness != 100 || full.Tempo != 100 {
		t.Errorf("Calibration ceiling = %+v, want all 100", full)
	}

	half := Features{RMS: 0.01, Centroid: 1000, Tempo: 90}.Normalize(cal)
	if half.Loudness != 50 || half.Brightness != 50 || half.Tempo != 50 {
		t.Errorf("Calibration midpoint = %+v, want all 50", half)
	}
}

func TestNormalizeClips(t *testing.T) {
	cal := DefaultCalibration()
	d := Features{RMS: 1.0, Centroid: 9000, Tempo: 400}.Normalize(cal)
	if d.Loudness != 100 || d.Brightness != 100 || d.Tempo != 100 {
		t.Errorf("Over-scale features should clip to 100, got %+v", d)
	}
}

func TestDescriptorsFromSamplesBounds(t *testing.T) {
	cal := DefaultCalibration()
	signals := [][]float64{
		sine(440, 0.02, 1.0, 22050),
		sine(2500, 1.0, 0.5, 22050),
		clickTrain(0.25, 3.0, 22050),
		make([]float64, 22050),
	}
	for i, s := range signals {
		d := DescriptorsFromSamples(s, 22050, cal)
		for name, v := range map[string]float64{"loudness": d.Loudness, "brightness": d.Brightness, "tempo": d.Tempo} {
			if v < 0 || v > 100 || math.IsNaN(v) {
				t.Errorf("signal %d: %s = %v outside [0,100]", i, name, v)
			}
		}
	}
}

func TestDescriptorsFromSamplesEmptyIsNeutral(t *testing.T) {
	cal := DefaultCalibration()
	if got := DescriptorsFromSamples(nil, 22050, cal); got != stress.NeutralDescriptors() {
		t.Errorf("Empty signal descriptors = %+v, want neutral", got)
	}
	if got := DescriptorsFromSamples(sine(440, 0.5, 1, 22050), 0, cal); got != stress.NeutralDescriptors() {
		t.Errorf("Zero sample rate descriptors = %+v, want neutral", got)
	}
}

func TestExtractorFallsBackOnBadFile(t *testing.T) {
	e := NewExtractor("", DefaultCalibration())
	if got := e.DescriptorsFromFile("does-not-exist.webm"); got != stress.NeutralDescriptors() {
		t.Errorf("Missing file descriptors = %+v, want neutral", got)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	samples := sine(620, 0.3, 1.2, 22050)
	first := Analyze(samples, 22050)
	for i := 0; i < 3; i++ {
		if got := Analyze(samples, 22050); got != first {
			t.Fatalf("Analyze not deterministic: %+v then %+v", first, got)
		}
	}
}

func TestFFTRoundTripEnergy(t *testing.T) {
	// Parseval check on a small frame keeps the transform honest.
	n := 256
	x := make([]complex128, n)
	var timeEnergy float64
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
		x[i] = complex(v, 0)
		timeEnergy += v * v
	}
	fft(x)
	var freqEnergy float64
	for _, c := range x {
		freqEnergy += real(c)*real(c) + imag(c)*imag(c)
	}
	freqEnergy /= float64(n)
	if math.Abs(timeEnergy-freqEnergy) > 1e-6 {
		t.Errorf("Parseval mismatch: time %v freq %v", timeEnergy, freqEnergy)
	}
}
