// Package imagecdn rewrites stored product image URLs into Cloudinary
// delivery URLs sized for the admin tables.
package imagecdn

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// ThumbTransformation crops to the 4:5 frame used by the storefront.
const ThumbTransformation = "c_fill,ar_4:5,w_160,q_auto,f_auto"

var versionSegment = regexp.MustCompile(`^v\d+$`)

type Thumbnailer struct {
	cld    *cloudinary.Cloudinary
	logger *zap.SugaredLogger
}

// New builds a Thumbnailer from a cloudinary:// URL. An empty URL gives a
// Thumbnailer that returns every URL unchanged.
func New(cloudinaryURL string, logger *zap.SugaredLogger) (*Thumbnailer, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	t := &Thumbnailer{logger: logger}
	if strings.TrimSpace(cloudinaryURL) == "" {
		return t, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	cld.Config.URL.Secure = true
	t.cld = cld
	return t, nil
}

func (t *Thumbnailer) Enabled() bool { return t != nil && t.cld != nil }

// Thumb returns a thumbnail URL for a stored image, or the stored URL when
// it is not a Cloudinary upload.
func (t *Thumbnailer) Thumb(imageURL string) string {
	if !t.Enabled() {
		return imageURL
	}
	publicID, err := PublicID(imageURL)
	if err != nil {
		return imageURL
	}
	img, err := t.cld.Image(publicID)
	if err != nil {
		t.logger.Warnw("cloudinary image", "url", imageURL, "error", err)
		return imageURL
	}
	img.Transformation = ThumbTransformation
	out, err := img.String()
	if err != nil {
		t.logger.Warnw("cloudinary url", "public_id", publicID, "error", err)
		return imageURL
	}
	return out
}

// PublicID extracts the asset id from a delivery URL: the path after
// "upload", without the version segment or the file extension.
func PublicID(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part != "upload" || i+1 >= len(parts) {
			continue
		}
		rest := parts[i+1:]
		if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		id = strings.TrimSuffix(id, path.Ext(id))
		if id == "" {
			break
		}
		return id, nil
	}
	return "", errors.New("failed to extract public ID from URL")
}
