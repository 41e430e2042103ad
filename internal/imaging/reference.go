package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Reference describes a reference image prepared for upload.
type Reference struct {
	// URI is either the original reference or a data URI holding the
	// re-encoded local file.
	URI string

	// Local reports whether the reference was read from disk.
	Local bool

	// Width and Height are the encoded dimensions of a local image.
	Width  int
	Height int
}

// IsLocalReference reports whether ref names a file on this machine.
//
// A file:// URL always counts as local. A bare absolute path counts only if
// it names an existing regular file, since raw base64 payloads may also start
// with a slash.
func IsLocalReference(ref string) bool {
	if strings.HasPrefix(ref, "file://") {
		return true
	}

	if !filepath.IsAbs(ref) {
		return false
	}

	info, err := os.Stat(ref)
	return err == nil && info.Mode().IsRegular()
}

// PrepareReference turns a local reference image into a data URI the remote
// service can consume. Any other reference is returned unchanged.
//
// Local images are decoded with EXIF orientation applied and, if maxSide is
// positive and either side exceeds it, scaled down to fit a maxSide square.
// JPEG sources are re-encoded as JPEG; everything else becomes PNG.
func PrepareReference(ref string, maxSide int) (*Reference, error) {
	if !IsLocalReference(ref) {
		return &Reference{URI: ref}, nil
	}

	path, err := localPath(ref)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open reference image %s: %w", path, err)
	}

	bounds := img.Bounds()
	if maxSide > 0 && (bounds.Dx() > maxSide || bounds.Dy() > maxSide) {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}

	format := imaging.PNG
	if f, err := imaging.FormatFromFilename(path); err == nil && f == imaging.JPEG {
		format = imaging.JPEG
	}

	uri, err := encodeDataURI(img, format)
	if err != nil {
		return nil, err
	}

	return &Reference{
		URI:    uri,
		Local:  true,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func localPath(ref string) (string, error) {
	if !strings.HasPrefix(ref, "file://") {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid file URL %q: %w", ref, err)
	}

	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("unsupported file URL host %q", u.Host)
	}

	if u.Path == "" {
		return "", fmt.Errorf("invalid file URL %q: empty path", ref)
	}

	return filepath.FromSlash(u.Path), nil
}

func encodeDataURI(img image.Image, format imaging.Format) (string, error) {
	mimeType := "image/png"
	if format == imaging.JPEG {
		mimeType = "image/jpeg"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("failed to encode reference image: %w", err)
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
