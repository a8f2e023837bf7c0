package catalogo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/galvez/go-catalogo/internal/fileutil"
)

// Asset store layout, relative to the base directory.
const (
	imagesDirName = "imagenes"
	logoBaseName  = "logo"
	coverFileName = "portada.png"
)

// imageExtensions is the ordered extension preference list used when
// resolving an asset by base name. First match wins.
var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// AssetStore is a keyed filesystem store for product images, the company
// logo, and the rendered cover. All paths derive from the base directory, so
// two stores with different bases never share state.
type AssetStore struct {
	base string
}

// NewAssetStore creates a store rooted at base, creating the image directory
// if needed.
func NewAssetStore(base string) (*AssetStore, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: base directory cannot be empty", ErrStorage)
	}
	if err := os.MkdirAll(filepath.Join(base, imagesDirName), 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating store: %v", ErrStorage, err)
	}
	return &AssetStore{base: base}, nil
}

// Base returns the store's base directory.
func (s *AssetStore) Base() string {
	return s.base
}

// SaveImage persists image bytes for a product code. Assets are normalized
// to a .jpg filename regardless of the uploaded format; the declared upload
// type is trusted, bytes are stored as-is.
func (s *AssetStore) SaveImage(code string, data []byte) error {
	path := filepath.Join(s.base, imagesDirName, code+".jpg")
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("%w: saving image for %s: %v", ErrStorage, code, err)
	}
	return nil
}

// ImagePath resolves a product code to a stored image path, trying
// extensions in preference order. Returns ("", false) when no asset exists.
func (s *AssetStore) ImagePath(code string) (string, bool) {
	for _, ext := range imageExtensions {
		path := filepath.Join(s.base, imagesDirName, code+ext)
		if fileutil.FileExists(path) {
			return path, true
		}
	}
	return "", false
}

// SaveLogo persists the company logo under its well-known name, keeping the
// uploaded extension. Any previously saved logo is removed first so that
// LogoPath never resolves a stale file with a different extension.
func (s *AssetStore) SaveLogo(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !isImageExtension(ext) {
		return fmt.Errorf("%w: unsupported logo extension %q", ErrStorage, ext)
	}
	s.removeLogo()
	path := filepath.Join(s.base, logoBaseName+ext)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("%w: saving logo: %v", ErrStorage, err)
	}
	return nil
}

// LogoPath resolves the stored logo, trying extensions in preference order.
func (s *AssetStore) LogoPath() (string, bool) {
	for _, ext := range imageExtensions {
		path := filepath.Join(s.base, logoBaseName+ext)
		if fileutil.FileExists(path) {
			return path, true
		}
	}
	return "", false
}

// CoverPath returns the fixed path where the rendered cover is persisted.
// The file may not exist yet.
func (s *AssetStore) CoverPath() string {
	return filepath.Join(s.base, coverFileName)
}

// Clean removes all stored images, the logo, and the rendered cover.
// Missing files and a missing store directory are not errors.
func (s *AssetStore) Clean() error {
	if err := os.RemoveAll(filepath.Join(s.base, imagesDirName)); err != nil {
		return fmt.Errorf("%w: cleaning images: %v", ErrStorage, err)
	}
	if err := os.MkdirAll(filepath.Join(s.base, imagesDirName), 0o750); err != nil {
		return fmt.Errorf("%w: recreating image directory: %v", ErrStorage, err)
	}
	s.removeLogo()
	if err := os.Remove(s.CoverPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: cleaning cover: %v", ErrStorage, err)
	}
	return nil
}

// removeLogo deletes any stored logo variant. Best-effort.
func (s *AssetStore) removeLogo() {
	for _, ext := range imageExtensions {
		_ = os.Remove(filepath.Join(s.base, logoBaseName+ext))
	}
}

// isImageExtension reports whether ext is an accepted raster extension.
func isImageExtension(ext string) bool {
	for _, e := range imageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
