package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const cloudinaryTimeout = 30 * time.Second

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CloudinaryStore implements domain.BlobStore on top of Cloudinary.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg CloudinaryConfig) (*CloudinaryStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: cfg.Folder}, nil
}

// Upload streams file to Cloudinary and returns the secure URL.
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cloudinaryTimeout)
	defer cancel()

	uniqueFilename := true
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       strings.TrimSuffix(filename, path.Ext(filename)),
		Folder:         s.folder,
		UniqueFilename: &uniqueFilename,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// Delete destroys the asset behind a public id or delivery URL. An asset that
// is already gone counts as deleted.
func (s *CloudinaryStore) Delete(ctx context.Context, publicIDOrURL string) error {
	publicID := ExtractPublicID(publicIDOrURL)
	if publicID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, cloudinaryTimeout)
	defer cancel()

	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, res.Error.Message)
	}
	switch res.Result {
	case "ok", "not found":
		return nil
	}
	return fmt.Errorf("cloudinary destroy %s: unexpected result %q", publicID, res.Result)
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// ExtractPublicID turns a Cloudinary delivery URL into the asset's public id:
// the path after "/upload/", past any transformations and the version
// segment, without the file extension. Anything that is not a URL is returned
// as is.
func ExtractPublicID(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || !strings.Contains(ref, "://") {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	p := u.Path
	if _, rest, ok := strings.Cut(p, "/upload/"); ok {
		segments := strings.Split(rest, "/")
		for i, seg := range segments {
			if versionSegment.MatchString(seg) {
				segments = segments[i+1:]
				break
			}
		}
		id := strings.Join(segments, "/")
		return strings.TrimSuffix(id, path.Ext(id))
	}

	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
