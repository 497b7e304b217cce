package thumbnail

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"quel-thumbnail-server/modules/common/fallback"
)

// 순서대로 시도하는 시스템 굵은 폰트 경로
var defaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
}

// loadFace - 후보 경로를 순서대로 시도하고 모두 실패하면 내장 폰트 사용
// 에러를 반환하지 않는다.
func loadFace(paths []string, size float64) font.Face {
	loaders := make([]func() (font.Face, error), 0, len(paths))
	for _, path := range paths {
		loaders = append(loaders, func() (font.Face, error) {
			return loadFaceFromFile(path, size)
		})
	}

	face, idx := fallback.FirstOf(loaders, func() font.Face {
		return embeddedFace(size)
	})
	if idx >= 0 {
		logrus.Debugf("🔤 [Thumbnail] Font loaded: %s (size %.0f)", paths[idx], size)
	} else {
		logrus.Debugf("🔤 [Thumbnail] System fonts unavailable, using embedded font (size %.0f)", size)
	}
	return face
}

func loadFaceFromFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return newFace(data, size)
}

func newFace(data []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

func embeddedFace(size float64) font.Face {
	face, err := newFace(gobold.TTF, size)
	if err != nil {
		logrus.Warnf("⚠️ [Thumbnail] Embedded font unusable, falling back to bitmap font: %v", err)
		return basicfont.Face7x13
	}
	return face
}
