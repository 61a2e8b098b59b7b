package imagestore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	a := NewKey("Photo.JPG")
	b := NewKey("photo.jpg")

	assert.True(t, strings.HasPrefix(a, "products/"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.NotEqual(t, a, b)
}

func TestDiskSave(t *testing.T) {
	dir := t.TempDir()
	store := NewDisk(dir)

	url, err := store.Save(context.Background(), "products/abc.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/abc.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "products", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

type failingClose struct {
	io.Writer
}

func (failingClose) Close() error {
	return errors.New("disk full")
}

func TestDiskSaveReportsCloseError(t *testing.T) {
	store := NewDisk(t.TempDir())
	var written strings.Builder
	store.create = func(string) (io.WriteCloser, error) {
		return failingClose{Writer: &written}, nil
	}

	url, err := store.Save(context.Background(), "products/abc.png", "image/png", strings.NewReader("png-bytes"))
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, url)
	assert.Equal(t, "png-bytes", written.String())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestDiskSaveReportsWriteError(t *testing.T) {
	url, err := NewDisk(t.TempDir()).Save(context.Background(), "products/abc.png", "image/png", failingReader{})
	assert.ErrorContains(t, err, "connection reset")
	assert.Empty(t, url)
}
