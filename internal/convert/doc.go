// Package convert extracts the audio track of a downloaded video into a
// sidecar file with ffmpeg. Each supported model.AudioFormat maps to a fixed
// set of codec parameters; the duration of the result is measured afterwards.
package convert
