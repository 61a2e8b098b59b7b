// Package imagestore saves listing photos to local disk or S3.
package imagestore

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// AllowedExtensions are the accepted image types.
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Store persists an image and returns the URL clients use to load it.
type Store interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// NewKey builds a unique object key keeping the original extension.
func NewKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return "products/" + strings.ToLower(id.String()) + ext
}

// Disk writes images under Dir; they are served from URLPrefix.
type Disk struct {
	Dir       string
	URLPrefix string

	create func(name string) (io.WriteCloser, error)
}

func NewDisk(dir string) *Disk {
	return &Disk{Dir: dir, URLPrefix: "/uploads", create: createFile}
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func (d *Disk) Save(_ context.Context, key, _ string, body io.Reader) (string, error) {
	destination := filepath.Join(d.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	create := d.create
	if create == nil {
		create = createFile
	}
	f, err := create(destination)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", destination, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", destination, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", destination, err)
	}
	return d.URLPrefix + "/" + key, nil
}
