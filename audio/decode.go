package audio

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
)

// decode loads an audio file as a mono float64 waveform at the target sample
// rate. Browser recordings (webm/ogg/mp4) are converted through ffmpeg to a
// temporary WAV first; the temp file is removed on every path.
func (e *Extractor) decode(path string) ([]float64, int, error) {
	wavPath, cleanup, err := e.toWAV(path)
	if err != nil {
		// No usable ffmpeg: a plain WAV upload can still be read directly.
		if strings.EqualFold(filepath.Ext(path), ".wav") {
			return decodeWAV(path)
		}
		return nil, 0, err
	}
	defer cleanup()
	return decodeWAV(wavPath)
}

// toWAV converts any ffmpeg-readable input to mono 16-bit PCM at the target
// rate. The returned cleanup removes the temp file and is safe to call once.
func (e *Extractor) toWAV(in string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "zenzone-*.wav")
	if err != nil {
		return "", nil, fmt.Errorf("create temp wav: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", in,
		"-ac", "1",
		"-ar", strconv.Itoa(e.Cal.SampleRate),
		"-acodec", "pcm_s16le",
		tmpPath,
	}
	if out, err := exec.Command(e.FFmpegBin, args...).CombinedOutput(); err != nil {
		os.Remove(tmpPath)
		return "", nil, fmt.Errorf("ffmpeg convert %s: %v: %s", filepath.Base(in), err, strings.TrimSpace(string(out)))
	}
	return tmpPath, func() { os.Remove(tmpPath) }, nil
}

func decodeWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid wav file", filepath.Base(path))
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("read pcm buffer: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("%s contains no samples", filepath.Base(path))
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := math.Pow(2, float64(bitDepth-1))

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	// Downmix interleaved channels while scaling to [-1, 1].
	samples := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i+channels <= len(buf.Data); i += channels {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i+c])
		}
		samples = append(samples, sum/float64(channels)/scale)
	}

	return samples, buf.Format.SampleRate, nil
}
