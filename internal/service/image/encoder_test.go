package image

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "LLMClients/internal/errors"
)

// pngHeader первые байты PNG, содержимое файла не декодируется.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestEncodeRoundTrip(t *testing.T) {
	path := writeFile(t, "cat.png", pngHeader)

	img, err := NewEncoder().Encode(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, "cat.png", img.Name)
	assert.Equal(t, int64(len(pngHeader)), img.Size)

	decoded, err := Decode(img.Data)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, decoded)
}

func TestEncodeMimeTypes(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"diagram.PNG", "image/png"},
		{"anim.gif", "image/gif"},
		{"shot.WebP", "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewEncoder().Encode(writeFile(t, tt.name, []byte("x")))
			require.NoError(t, err)
			assert.Equal(t, tt.want, img.MimeType)
		})
	}
}

func TestEncodeValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"unsupported extension", writeFile(t, "scan.bmp", []byte("BM")), apperrors.ErrUnsupportedFormat},
		{"no extension", writeFile(t, "README", []byte("x")), apperrors.ErrUnsupportedFormat},
		{"missing file", filepath.Join(dir, "absent.png"), apperrors.ErrFileNotFound},
		{"directory", dir, apperrors.ErrNotAFile},
		{"empty file", writeFile(t, "empty.jpg", nil), apperrors.ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncoder().Encode(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.True(t, apperrors.IsFatal(err))
		})
	}
}

func TestEncodeTooLarge(t *testing.T) {
	path := writeFile(t, "big.gif", make([]byte, 64))

	_, err := (&Encoder{maxSize: 16}).Encode(path)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestEncodedImageDataURL(t *testing.T) {
	img := EncodedImage{MimeType: "image/webp", Data: "UklGRg=="}
	assert.Equal(t, "data:image/webp;base64,UklGRg==", img.DataURL())
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	assert.ElementsMatch(t, []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}, formats)

	formats[0] = ".bmp"
	assert.Equal(t, ".jpg", SupportedFormats()[0])

	_, ok := mimeTypeFor("x.tiff")
	assert.False(t, ok)
}
