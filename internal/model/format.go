package model

import "strings"

// Shared transcoder parameters
const (
	CDSampleRate = 44100
	StereoLayout = 2
)

// AudioFormat describes a sidecar format and the fixed codec parameters used
// to produce it
type AudioFormat struct {
	ID         string
	Label      string
	Extension  string
	Codec      string
	Bitrate    string // empty for uncompressed formats
	SampleRate int
	Channels   int
}

var (
	// FormatMP3 is the lossy compressed format
	FormatMP3 = AudioFormat{
		ID:         "mp3",
		Label:      "MP3",
		Extension:  ".mp3",
		Codec:      "libmp3lame",
		Bitrate:    "320k",
		SampleRate: CDSampleRate,
		Channels:   StereoLayout,
	}

	// FormatWAV is 16-bit PCM, suitable for burning an audio CD
	FormatWAV = AudioFormat{
		ID:         "wav",
		Label:      "WAV (Audio CD)",
		Extension:  ".wav",
		Codec:      "pcm_s16le",
		SampleRate: CDSampleRate,
		Channels:   StereoLayout,
	}
)

// AudioFormats returns the supported formats in menu order
func AudioFormats() []AudioFormat {
	return []AudioFormat{FormatMP3, FormatWAV}
}

// FormatByID looks up a format by its ID, case insensitive
func FormatByID(id string) (AudioFormat, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, f := range AudioFormats() {
		if f.ID == id {
			return f, true
		}
	}
	return AudioFormat{}, false
}

// IsLossless reports whether the format keeps uncompressed PCM samples
func (f AudioFormat) IsLossless() bool {
	return f.Bitrate == ""
}
