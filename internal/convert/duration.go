package convert

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tcolgate/mp3"

	"github.com/ytget/ytgrab/internal/model"
)

// ErrInvalidWAV is returned for files without a readable RIFF/WAVE header
var ErrInvalidWAV = errors.New("invalid wav file")

// MeasureDuration returns the playing time of a produced sidecar
func MeasureDuration(path string, format model.AudioFormat) (time.Duration, error) {
	switch format.ID {
	case model.FormatMP3.ID:
		return Mp3DurationByFrames(path)
	case model.FormatWAV.ID:
		return WavDuration(path)
	default:
		return 0, fmt.Errorf("no duration reader for format %q", format.ID)
	}
}

// Mp3DurationByFrames sums the duration of every MPEG audio frame in path
func Mp3DurationByFrames(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := mp3.NewDecoder(f)
	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
	)
	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		total += frame.Duration()
	}
	return total, nil
}

// WavDuration computes the playing time from the data chunk size and the byte
// rate declared in the fmt chunk.
func WavDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0, ErrInvalidWAV
	}

	var byteRate uint32
	for {
		var header [8]byte
		if _, err := io.ReadFull(f, header[:]); err != nil {
			return 0, fmt.Errorf("%w: missing data chunk", ErrInvalidWAV)
		}
		id := string(header[0:4])
		size := binary.LittleEndian.Uint32(header[4:8])

		switch id {
		case "fmt ":
			var fmtChunk [16]byte
			if size < uint32(len(fmtChunk)) {
				return 0, fmt.Errorf("%w: short fmt chunk", ErrInvalidWAV)
			}
			if _, err := io.ReadFull(f, fmtChunk[:]); err != nil {
				return 0, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
			}
			byteRate = binary.LittleEndian.Uint32(fmtChunk[8:12])
			if _, err := f.Seek(int64(size-uint32(len(fmtChunk)))+int64(size%2), io.SeekCurrent); err != nil {
				return 0, err
			}
		case "data":
			if byteRate == 0 {
				return 0, fmt.Errorf("%w: data before fmt chunk", ErrInvalidWAV)
			}
			return time.Duration(float64(size) / float64(byteRate) * float64(time.Second)), nil
		default:
			// Chunks are padded to an even size
			if _, err := f.Seek(int64(size)+int64(size%2), io.SeekCurrent); err != nil {
				return 0, err
			}
		}
	}
}
