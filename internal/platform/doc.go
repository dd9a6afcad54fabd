// Package platform contains OS/platform integration glue: filesystem helpers,
// discovery of the freshly downloaded media file, rename helpers, and
// validation of the external yt-dlp/ffmpeg executables.
package platform
