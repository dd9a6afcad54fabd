package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ytget/ytgrab/internal/model"
)

// DownloadDetail renders the size, speed and ETA of a running download
func DownloadDetail(task *model.DownloadTask) string {
	var parts []string
	switch {
	case task.Total > 0:
		parts = append(parts, fmt.Sprintf("%s / %s",
			humanize.Bytes(uint64(task.Downloaded)), humanize.Bytes(uint64(task.Total))))
	case task.Downloaded > 0:
		parts = append(parts, humanize.Bytes(uint64(task.Downloaded)))
	}
	if task.Speed != "" {
		parts = append(parts, task.Speed)
	}
	if task.ETASec > 0 {
		parts = append(parts, "ETA "+task.GetETAString())
	}
	return strings.Join(parts, MiddleDotSeparator)
}
