package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestImage writes a solid-color image of the given size and returns its path.
func writeTestImage(t *testing.T, name string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{200, 40, 40, 255})
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	if strings.HasSuffix(name, ".jpg") {
		require.NoError(t, jpeg.Encode(f, img, nil))
	} else {
		require.NoError(t, png.Encode(f, img))
	}

	return path
}

func decodeDataURI(t *testing.T, uri, mimeType string) image.Image {
	t.Helper()

	prefix := "data:" + mimeType + ";base64,"
	require.True(t, strings.HasPrefix(uri, prefix), "unexpected prefix in %.40s", uri)

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestIsLocalReference(t *testing.T) {
	path := writeTestImage(t, "ref.png", 4, 4)

	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{"https url", "https://example.com/a.png", false},
		{"data uri", "data:image/png;base64,iVBORw0KGgo=", false},
		{"raw jpeg base64", "/9j/4AAQSkZJRgABAQAAAQABAAD", false},
		{"relative path", "images/a.png", false},
		{"existing absolute path", path, true},
		{"missing absolute path", "/nonexistent/ref.png", false},
		{"directory", filepath.Dir(path), false},
		{"file url", "file:///nonexistent/ref.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocalReference(tt.ref))
		})
	}
}

func TestPrepareReference_Passthrough(t *testing.T) {
	for _, ref := range []string{"https://example.com/a.png", "data:image/png;base64,AAAA", ""} {
		got, err := PrepareReference(ref, 16)
		require.NoError(t, err)
		assert.Equal(t, ref, got.URI)
		assert.False(t, got.Local)
	}
}

func TestPrepareReference_PNG(t *testing.T) {
	path := writeTestImage(t, "ref.png", 40, 20)

	got, err := PrepareReference(path, 0)
	require.NoError(t, err)

	assert.True(t, got.Local)
	assert.Equal(t, 40, got.Width)
	assert.Equal(t, 20, got.Height)

	img := decodeDataURI(t, got.URI, "image/png")
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestPrepareReference_JPEGStaysJPEG(t *testing.T) {
	path := writeTestImage(t, "ref.jpg", 30, 30)

	got, err := PrepareReference("file://"+filepath.ToSlash(path), 0)
	require.NoError(t, err)

	decodeDataURI(t, got.URI, "image/jpeg")
}

func TestPrepareReference_Downscales(t *testing.T) {
	path := writeTestImage(t, "wide.png", 200, 100)

	got, err := PrepareReference(path, 50)
	require.NoError(t, err)

	assert.Equal(t, 50, got.Width)
	assert.Equal(t, 25, got.Height)

	img := decodeDataURI(t, got.URI, "image/png")
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestPrepareReference_SmallImageNotUpscaled(t *testing.T) {
	path := writeTestImage(t, "small.png", 10, 8)

	got, err := PrepareReference(path, 50)
	require.NoError(t, err)

	assert.Equal(t, 10, got.Width)
	assert.Equal(t, 8, got.Height)
}

func TestPrepareReference_Errors(t *testing.T) {
	notImage := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0o644))

	tests := []struct {
		name string
		ref  string
	}{
		{"missing file url", "file:///nonexistent/ref.png"},
		{"remote host file url", "file://server/share/ref.png"},
		{"not an image", notImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrepareReference(tt.ref, 0)
			assert.Error(t, err)
		})
	}
}
