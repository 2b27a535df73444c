package service

import (
	"context"
	"io"
)

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
	// TransformedURL builds the delivery URL of an uploaded asset with a transformation applied.
	TransformedURL(publicID, transformation string) (string, error)
}
