package media_storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/application/service"
	"github.com/khoahotran/hireboard/internal/config"
	"github.com/khoahotran/hireboard/pkg/logger"
)

// imageFormats are the logo formats Cloudinary accepts; anything else is
// rejected before it is stored.
var imageFormats = api.CldAPIArray{"png", "jpg", "jpeg", "webp", "svg"}

type cloudinaryAdapter struct {
	cld    *cloudinary.Cloudinary
	logger logger.Logger
}

func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.Uploader, error) {
	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("Connected to Cloudinary", zap.String("cloud_name", cfg.Cloudinary.CloudName))
	return &cloudinaryAdapter{cld: cld, logger: log}, nil
}

func (a *cloudinaryAdapter) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error) {
	result, err := a.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		AllowedFormats: imageFormats,
		Overwrite:      api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	a.logger.Debug("Uploaded image", zap.String("public_id", result.PublicID), zap.Int("bytes", result.Bytes))
	return result.SecureURL, nil
}

// Delete removes an image and purges it from the CDN cache.
func (a *cloudinaryAdapter) Delete(ctx context.Context, publicID string) error {
	result, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary: %w", err)
	}
	if result.Result != "ok" {
		a.logger.Warn("Cloudinary delete did not remove an asset", zap.String("public_id", publicID), zap.String("result", result.Result))
	}
	return nil
}

func (a *cloudinaryAdapter) TransformedURL(publicID, transformation string) (string, error) {
	img, err := a.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("init cloudinary asset failed: %w", err)
	}
	img.Transformation = transformation
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("build cloudinary url failed: %w", err)
	}
	return url, nil
}
