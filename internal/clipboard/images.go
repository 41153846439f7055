package clipboard

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	defaultThumbnailMaxWidth  = 120
	defaultThumbnailMaxHeight = 80
)

// ImageStore manages the filesystem side of image clipboard records:
// original images are written under images/ named by content hash,
// alongside a generated thumbnail under thumbnails/. The database only
// ever stores the paths this produces.
type ImageStore struct {
	baseDir       string
	imagesDir     string
	thumbnailsDir string
	thumbMaxW     int
	thumbMaxH     int
}

// OpenImageStore creates (if needed) the images/ and thumbnails/
// subdirectories under baseDir.
func OpenImageStore(baseDir string) (*ImageStore, error) {
	imagesDir := filepath.Join(baseDir, "images")
	thumbsDir := filepath.Join(baseDir, "thumbnails")
	for _, dir := range []string{imagesDir, thumbsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create image storage directory %s: %w", dir, err)
		}
	}
	return &ImageStore{
		baseDir:       baseDir,
		imagesDir:     imagesDir,
		thumbnailsDir: thumbsDir,
		thumbMaxW:     defaultThumbnailMaxWidth,
		thumbMaxH:     defaultThumbnailMaxHeight,
	}, nil
}

// SetThumbnailSize overrides the default thumbnail bounding box.
func (s *ImageStore) SetThumbnailSize(maxW, maxH int) {
	s.thumbMaxW = maxW
	s.thumbMaxH = maxH
}

// SaveResult describes a successfully stored image.
type SaveResult struct {
	ImagePath     string
	ThumbnailPath string
	Width         int
	Height        int
	FileSize      int64
}

// SaveImage decodes data, writes the original bytes to images/<hash>.<ext>
// and a thumbnail to thumbnails/<hash>.png, skipping each write if a
// file with that hash already exists. The thumbnail is scaled to fit the
// thumbnail box with its aspect ratio kept; an image already inside the
// box is copied without scaling.
func (s *ImageStore) SaveImage(data []byte, format, hash string) (SaveResult, error) {
	ext := normalizeFormat(format)
	imagePath := filepath.Join(s.imagesDir, hash+"."+ext)
	thumbPath := filepath.Join(s.thumbnailsDir, hash+".png")

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return SaveResult{}, fmt.Errorf("decode clipboard image: %w", err)
	}
	bounds := img.Bounds()

	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		if err := os.WriteFile(imagePath, data, 0o644); err != nil {
			return SaveResult{}, fmt.Errorf("write clipboard image: %w", err)
		}
	}

	if _, err := os.Stat(thumbPath); os.IsNotExist(err) {
		thumb := imaging.Fit(img, s.thumbMaxW, s.thumbMaxH, imaging.Lanczos)
		if err := imaging.Save(thumb, thumbPath); err != nil {
			return SaveResult{}, fmt.Errorf("write clipboard thumbnail: %w", err)
		}
	}

	info, err := os.Stat(imagePath)
	if err != nil {
		return SaveResult{}, fmt.Errorf("stat clipboard image: %w", err)
	}

	return SaveResult{
		ImagePath:     imagePath,
		ThumbnailPath: thumbPath,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		FileSize:      info.Size(),
	}, nil
}

// LoadImage reads the original image bytes back from disk.
func (s *ImageStore) LoadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clipboard image: %w", err)
	}
	return data, nil
}

// DeleteImage removes both the original and its thumbnail. Missing
// files are not an error, since callers may retry cleanup after a
// partial failure.
func (s *ImageStore) DeleteImage(imagePath, thumbnailPath string) error {
	for _, p := range []string{imagePath, thumbnailPath} {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete clipboard image file %s: %w", p, err)
		}
	}
	return nil
}

// StorageSize returns the combined size in bytes of the images and
// thumbnails directories.
func (s *ImageStore) StorageSize() (int64, error) {
	var total int64
	for _, dir := range []string{s.imagesDir, s.thumbnailsDir} {
		err := filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				total += info.Size()
			}
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return total, nil
}

func normalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	switch f {
	case "jpg", "jpeg":
		return "jpg"
	case "gif":
		return "gif"
	default:
		return "png"
	}
}
