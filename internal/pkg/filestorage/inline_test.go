package filestorage

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/counselordesk/internal/pkg/apperrors"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["image"], 1)
	return form.File["image"][0]
}

func TestEncodeImage(t *testing.T) {
	url, err := EncodeImage(pngBytes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	assert.True(t, IsDataURL(url))

	_, err = EncodeImage([]byte("姓名,性别\n张三,男\n"))
	assert.ErrorIs(t, err, apperrors.ErrNotAnImage)
}

func TestSaveImage(t *testing.T) {
	s := NewInlineStorage(1024)

	url, err := s.SaveImage(fileHeader(t, "cert.png", pngBytes))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	url, err = s.SaveImage(nil)
	require.NoError(t, err)
	assert.Empty(t, url)

	_, err = s.SaveImage(fileHeader(t, "notes.txt", []byte("plain text")))
	assert.ErrorIs(t, err, apperrors.ErrNotAnImage)
}

func TestReadFileEnforcesLimit(t *testing.T) {
	s := NewInlineStorage(16)

	_, _, err := s.ReadFile(fileHeader(t, "big.png", pngBytes), 16)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	data, info, err := s.ReadFile(fileHeader(t, "roster.csv", []byte("a,b\n")), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("a,b\n"), data)
	assert.Equal(t, "roster.csv", info.Filename)
	assert.Equal(t, int64(4), info.FileSize)

	_, _, err = s.ReadFile(nil, 0)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
