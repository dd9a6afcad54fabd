package download

import (
	"context"

	"github.com/ytget/ytgrab/internal/model"
)

// Fetcher defines the interface for the download service.
type Fetcher interface {
	// SetUpdateCallback registers a function receiving progress snapshots
	SetUpdateCallback(func(*model.DownloadTask))

	// Fetch downloads req.URL into req.Directory and blocks until yt-dlp exits
	Fetch(ctx context.Context, req model.FetchRequest) (*model.DownloadTask, error)
}
