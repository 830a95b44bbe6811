// Package thumbs generates downscaled preview images for evidence photos,
// cached on disk so repeated listings do not re-decode full-size captures.
package thumbs

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"

	"objectif-go/internal/evidence"
)

// Generator produces and caches thumbnails. Cache entries are keyed by the
// source path, size and mtime, so an edited photo gets a fresh thumbnail.
type Generator struct {
	fsmgr    evidence.FilesystemManager
	cacheDir string
	maxWidth int
	quality  int
}

// NewGenerator creates a Generator writing into cacheDir.
func NewGenerator(fsmgr evidence.FilesystemManager, cacheDir string, maxWidth, quality int) *Generator {
	if maxWidth <= 0 {
		maxWidth = 256
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Generator{fsmgr: fsmgr, cacheDir: cacheDir, maxWidth: maxWidth, quality: quality}
}

// Thumbnail returns the path of a cached thumbnail for srcPath, generating
// it on a cache miss.
func (g *Generator) Thumbnail(srcPath string) (string, error) {
	fi, err := g.fsmgr.Stat(srcPath)
	if err != nil {
		return "", fmt.Errorf("stat photo %s: %w", srcPath, err)
	}

	key := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", srcPath, fi.Size(), fi.ModTime().UnixNano())))
	cachePath := filepath.Join(g.cacheDir, fmt.Sprintf("%x.jpg", key[:16]))

	if _, err := g.fsmgr.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	data, err := g.render(srcPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating thumbnail cache %s: %w", g.cacheDir, err)
	}
	if err := g.fsmgr.WriteFile(cachePath, data); err != nil {
		return "", fmt.Errorf("writing thumbnail %s: %w", cachePath, err)
	}
	return cachePath, nil
}

// render decodes the source photo and re-encodes it as a JPEG no wider than
// maxWidth, preserving the aspect ratio.
func (g *Generator) render(srcPath string) ([]byte, error) {
	f, err := g.fsmgr.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("opening photo %s: %w", srcPath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding photo %s: %w", srcPath, err)
	}

	if img.Bounds().Dx() > g.maxWidth {
		img = resize.Resize(uint(g.maxWidth), 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: g.quality}); err != nil {
		return nil, fmt.Errorf("encoding thumbnail for %s: %w", srcPath, err)
	}
	return buf.Bytes(), nil
}
