package generate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/youruser/cardgen/internal/util"
)

var (
	ErrNotImage    = errors.New("file must be an image")
	ErrBadFilename = errors.New("invalid file name")
)

// FallbackImages are served when the placeholder directory holds no images.
var FallbackImages = []string{
	"https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=500&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1520637836862-4d197d17c73a?w=400&h=500&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1551582045-6ec9c671a834?w=400&h=500&fit=crop&crop=center",
}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// Pool is a directory of placeholder images published under baseURL.
type Pool struct {
	dir     string
	baseURL string
}

func NewPool(dir, baseURL string) *Pool {
	return &Pool{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Pool) Dir() string { return p.dir }

// List returns the public URLs of every image in the pool, sorted by name.
// A missing directory is an empty pool.
func (p *Pool) List() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read placeholder dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		out = append(out, p.baseURL+"/"+e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// Save stores an uploaded image in the pool and returns its public URL.
func (p *Pool) Save(filename, contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %q", ErrNotImage, contentType)
	}
	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrBadFilename, filename)
	}
	if err := util.EnsureDir(p.dir); err != nil {
		return "", fmt.Errorf("create placeholder dir: %w", err)
	}

	fp, err := os.Create(filepath.Join(p.dir, name))
	if err != nil {
		return "", err
	}
	defer fp.Close()
	if _, err := io.Copy(fp, r); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return p.baseURL + "/" + name, nil
}
