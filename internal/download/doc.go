// Package download runs the fetch tool, yt-dlp, through
// github.com/lrstanley/go-ytdlp. One Fetch call is one blocking child process;
// progress is pushed to an optional callback while it runs.
package download
