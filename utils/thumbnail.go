package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const thumbSize = 256

var imageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".tif": true, ".tiff": true}

func IsImage(path string) bool {
	return imageExt[strings.ToLower(filepath.Ext(path))]
}

// ThumbPath is where the thumbnail of src is written: name_thumb.ext next to it.
func ThumbPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_thumb" + ext
}

// MakeThumbnail writes a 256x256 center-cropped thumbnail of an image file and
// returns its path.
func MakeThumbnail(src string) (string, error) {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	thumb := imaging.Fill(img, thumbSize, thumbSize, imaging.Center, imaging.Lanczos)
	dst := ThumbPath(src)
	if err := imaging.Save(thumb, dst); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return dst, nil
}
