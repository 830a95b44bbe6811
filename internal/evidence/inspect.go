package evidence

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// PhotoInfo carries the inspectable metadata of one photo file.
type PhotoInfo struct {
	Path       string
	Size       int64
	Width      int
	Height     int
	CapturedAt time.Time
	FromEXIF   bool // false when CapturedAt fell back to file mtime
}

// InspectPhoto reads a photo's pixel dimensions and capture timestamp.
// The timestamp comes from EXIF DateTimeOriginal when present; devices that
// strip EXIF leave only the file modification time, which is used as a
// fallback.
func InspectPhoto(fsmgr FilesystemManager, path string) (*PhotoInfo, error) {
	fi, err := fsmgr.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat photo %s: %w", path, err)
	}

	info := &PhotoInfo{
		Path:       path,
		Size:       fi.Size(),
		CapturedAt: fi.ModTime(),
	}

	f, err := fsmgr.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening photo %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decoding photo %s: %w", path, err)
	}
	info.Width = cfg.Width
	info.Height = cfg.Height

	if t, err := exifDate(fsmgr, path); err == nil {
		info.CapturedAt = t
		info.FromEXIF = true
	}

	return info, nil
}

// exifDate extracts the capture date from a photo's EXIF metadata.
func exifDate(fsmgr FilesystemManager, path string) (time.Time, error) {
	f, err := fsmgr.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	return x.DateTime()
}
