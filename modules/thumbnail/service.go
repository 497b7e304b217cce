package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"quel-thumbnail-server/modules/common/utils"
)

// DefaultKeyword - keyword가 없을 때 쓰는 제목
const DefaultKeyword = "제목 없음"

const (
	canvasSize     = 1000
	outlineWidth   = 5
	pngQualityHint = 95
)

var (
	gradientStart = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	gradientEnd   = color.NRGBA{R: 156, G: 39, B: 176, A: 255}
	outlineColor  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

	// 줄별 폰트 크기, 색상(노란색/초록색/분홍색), 세로 기준점
	lineFontSizes = [3]float64{90, 80, 70}
	lineColors    = [3]color.NRGBA{
		{R: 255, G: 215, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 255, G: 20, B: 147, A: 255},
	}
	lineAnchors = [3]int{250, 500, 750}
)

type Service struct {
	fontPaths   []string
	webpQuality float32
}

func NewService(webpQuality float32) *Service {
	return &Service{
		fontPaths:   defaultFontPaths,
		webpQuality: webpQuality,
	}
}

// CreateThumbnail - 키워드로 1000x1000 썸네일 PNG 생성
func (s *Service) CreateThumbnail(keyword string, includeWebP bool) (*ThumbnailResponse, error) {
	canvas := newGradientCanvas()

	lines := SplitLines(keyword)
	for i, line := range lines {
		if line == "" {
			continue
		}
		face := loadFace(s.fontPaths, lineFontSizes[i])
		drawOutlinedLine(canvas, face, line, lineAnchors[i], lineColors[i])
		face.Close()
	}

	pngData, err := utils.EncodePNG(canvas, pngQualityHint)
	if err != nil {
		return nil, err
	}
	imageBase64 := utils.ConvertImageToBase64(pngData)

	response := &ThumbnailResponse{
		Success:      true,
		ImageBase64:  imageBase64,
		ImageDataURL: utils.BuildDataURL(imageBase64),
		ImageSize:    len(pngData),
		Lines: Lines{
			Line1: lines[0],
			Line2: lines[1],
			Line3: lines[2],
		},
	}

	if includeWebP {
		webpData, err := utils.EncodeWebP(canvas, s.webpQuality)
		if err != nil {
			return nil, fmt.Errorf("webp output: %w", err)
		}
		response.ImageWebPBase64 = utils.ConvertImageToBase64(webpData)
		response.ImageWebPSize = len(webpData)
		logrus.Debugf("✅ [Thumbnail] WebP encoded: %d bytes → %d bytes", len(pngData), len(webpData))
	}

	return response, nil
}

// gradientColor - y행의 배경색 (위 파랑 → 아래 보라, 채널별 선형 보간 후 버림)
func gradientColor(y, height int) color.NRGBA {
	return color.NRGBA{
		R: lerpChannel(gradientStart.R, gradientEnd.R, y, height),
		G: lerpChannel(gradientStart.G, gradientEnd.G, y, height),
		B: lerpChannel(gradientStart.B, gradientEnd.B, y, height),
		A: 255,
	}
}

func lerpChannel(start, end uint8, y, height int) uint8 {
	v := float64(start) + float64(int(end)-int(start))*float64(y)/float64(height)
	return uint8(math.Trunc(v))
}

func newGradientCanvas() *image.NRGBA {
	canvas := imaging.New(canvasSize, canvasSize, gradientStart)
	for y := 0; y < canvasSize; y++ {
		row := image.Rect(0, y, canvasSize, y+1)
		draw.Draw(canvas, row, image.NewUniform(gradientColor(y, canvasSize)), image.Point{}, draw.Src)
	}
	return canvas
}

// lineOrigin - 텍스트를 가로 중앙, anchor 기준 세로 중앙에 놓는 baseline 위치
// 텍스트 상단은 폰트 ascent 선에 맞춘다.
func lineOrigin(face font.Face, text string, anchor int) fixed.Point26_6 {
	bounds, _ := font.BoundString(face, text)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	textHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := float64(canvasSize-textWidth) / 2
	y := float64(anchor) - float64(textHeight)/2

	return fixed.Point26_6{
		X: toFixed(x),
		Y: toFixed(y) + face.Metrics().Ascent,
	}
}

// drawOutlinedLine - 11x11 범위에서 중앙을 뺀 120번 검은 외곽선을 찍고 본문 색으로 덮음
func drawOutlinedLine(dst draw.Image, face font.Face, text string, anchor int, fill color.Color) {
	origin := lineOrigin(face, text, anchor)

	for dx := -outlineWidth; dx <= outlineWidth; dx++ {
		for dy := -outlineWidth; dy <= outlineWidth; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawText(dst, face, text, origin.Add(fixed.P(dx, dy)), outlineColor)
		}
	}

	drawText(dst, face, text, origin, fill)
}

func drawText(dst draw.Image, face font.Face, text string, dot fixed.Point26_6, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
