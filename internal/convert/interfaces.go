package convert

import (
	"context"

	"github.com/ytget/ytgrab/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	Convert(ctx context.Context, inputPath string, format model.AudioFormat) (*model.ConversionTask, error)
}
