package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"motoshop-be/internal/logger"
	"motoshop-be/internal/taxonomy"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// ErrNoSecureURL is returned when the upload succeeds but the storage
// service hands back no delivery URL.
var ErrNoSecureURL = errors.New("upload returned no secure url")

// assetAPI is the subset of the Cloudinary upload API used for icons.
type assetAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// IconStore keeps category icons in a Cloudinary folder.
type IconStore struct {
	api    assetAPI
	folder string
}

var _ taxonomy.IconUploader = (*IconStore)(nil)

func NewCloudinaryIconStore(cloudName, apiKey, apiSecret, folder string) (*IconStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return newIconStore(&cld.Upload, folder), nil
}

func newIconStore(api assetAPI, folder string) *IconStore {
	return &IconStore{api: api, folder: folder}
}

// UploadIcon stores the staged asset and returns its persisted reference.
func (s *IconStore) UploadIcon(ctx context.Context, asset *taxonomy.IconAsset) (*taxonomy.IconRef, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "media"),
		zap.String("method", "UploadIcon"),
		zap.String("filename", asset.Filename),
	)

	unique := true
	overwrite := false
	params := uploader.UploadParams{
		Folder:         s.folder,
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	}
	if name := baseName(asset.Filename); name != "" {
		params.PublicID = name
	}

	result, err := s.api.Upload(ctx, bytes.NewReader(asset.Data), params)
	if err != nil {
		log.Error("upload failed", zap.Error(err))
		return nil, fmt.Errorf("failed to upload icon: %w", err)
	}
	if result.Error.Message != "" {
		log.Error("upload rejected", zap.String("reason", result.Error.Message))
		return nil, fmt.Errorf("failed to upload icon: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return nil, ErrNoSecureURL
	}

	log.Info("icon uploaded", zap.String("public_id", result.PublicID))
	return &taxonomy.IconRef{SecureURL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DestroyIcon removes an uploaded asset. A missing asset is not an error.
func (s *IconStore) DestroyIcon(ctx context.Context, publicID string) error {
	result, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to destroy icon %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to destroy icon %s: %s", publicID, result.Error.Message)
	}

	logger.FromCtx(ctx).Debug("icon destroyed",
		zap.String("public_id", publicID),
		zap.String("result", result.Result),
	)
	return nil
}

// baseName strips directory and extension so the public id stays readable.
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "." || name == "/" {
		return ""
	}
	return name
}
