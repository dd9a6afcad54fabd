package ui

import (
	"testing"

	"github.com/ytget/ytgrab/internal/model"
)

func TestDownloadDetail(t *testing.T) {
	tests := []struct {
		name string
		task model.DownloadTask
		want string
	}{
		{
			name: "total known",
			task: model.DownloadTask{Downloaded: 1000000, Total: 2000000, Speed: "1.0 MB/s", ETASec: 65},
			want: "1.0 MB / 2.0 MB · 1.0 MB/s · ETA 01:05",
		},
		{
			name: "total unknown",
			task: model.DownloadTask{Downloaded: 5000, ETASec: -1},
			want: "5.0 kB",
		},
		{
			name: "nothing yet",
			task: model.DownloadTask{ETASec: -1},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DownloadDetail(&tt.task); got != tt.want {
				t.Errorf("DownloadDetail() = %q, want %q", got, tt.want)
			}
		})
	}
}
