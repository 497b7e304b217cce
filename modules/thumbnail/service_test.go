package thumbnail

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
)

// newTestService uses font paths that never exist so rendering always goes
// through the embedded font.
func newTestService() *Service {
	return &Service{
		fontPaths:   []string{"/nonexistent/fonts/Bold.ttf"},
		webpQuality: 90,
	}
}

func decodeThumbnail(t *testing.T, resp *ThumbnailResponse) image.Image {
	t.Helper()

	data, err := base64.StdEncoding.DecodeString(resp.ImageBase64)
	require.NoError(t, err)
	require.Equal(t, resp.ImageSize, len(data))

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestGradientColor(t *testing.T) {
	tests := []struct {
		name string
		y    int
		want color.NRGBA
	}{
		{name: "top row", y: 0, want: color.NRGBA{R: 33, G: 150, B: 243, A: 255}},
		{name: "second row floors falling channels", y: 1, want: color.NRGBA{R: 33, G: 149, B: 242, A: 255}},
		{name: "middle row", y: 500, want: color.NRGBA{R: 94, G: 94, B: 209, A: 255}},
		{name: "bottom row", y: 999, want: color.NRGBA{R: 155, G: 39, B: 176, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gradientColor(tt.y, canvasSize))
		})
	}
}

func TestNewGradientCanvas(t *testing.T) {
	canvas := newGradientCanvas()
	require.Equal(t, image.Rect(0, 0, canvasSize, canvasSize), canvas.Bounds())

	for _, y := range []int{0, 1, 250, 500, 999} {
		for _, x := range []int{0, 500, 999} {
			assert.Equal(t, gradientColor(y, canvasSize), canvas.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestCreateThumbnail(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name      string
		keyword   string
		wantLines Lines
	}{
		{name: "one word", keyword: "hello", wantLines: Lines{Line1: "hello"}},
		{name: "two words", keyword: "hello world", wantLines: Lines{Line1: "hello", Line2: "world"}},
		{name: "five words", keyword: "the quick brown fox jumps", wantLines: Lines{Line1: "the quick", Line2: "brown fox", Line3: "jumps"}},
		{name: "default keyword", keyword: DefaultKeyword, wantLines: Lines{Line1: "제목", Line2: "없음"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.CreateThumbnail(tt.keyword, false)
			require.NoError(t, err)

			assert.True(t, resp.Success)
			assert.Equal(t, tt.wantLines, resp.Lines)
			assert.Equal(t, "data:image/png;base64,"+resp.ImageBase64, resp.ImageDataURL)
			assert.Empty(t, resp.ImageWebPBase64)
			assert.Zero(t, resp.ImageWebPSize)

			img := decodeThumbnail(t, resp)
			assert.Equal(t, 1000, img.Bounds().Dx())
			assert.Equal(t, 1000, img.Bounds().Dy())

			// 모서리는 텍스트가 닿지 않는다
			assert.Equal(t, gradientColor(0, canvasSize), nrgbaAt(img, 0, 0))
			assert.Equal(t, gradientColor(999, canvasSize), nrgbaAt(img, 999, 999))
		})
	}
}

func TestCreateThumbnailDrawsOutlinedText(t *testing.T) {
	resp, err := newTestService().CreateThumbnail("hello", false)
	require.NoError(t, err)
	img := decodeThumbnail(t, resp)

	countInBand := func(minY, maxY int, c color.NRGBA) int {
		n := 0
		for y := minY; y < maxY; y++ {
			for x := 0; x < canvasSize; x++ {
				if nrgbaAt(img, x, y) == c {
					n++
				}
			}
		}
		return n
	}

	assert.Positive(t, countInBand(150, 350, lineColors[0]), "fill color of line 1")
	assert.Positive(t, countInBand(150, 350, outlineColor), "outline of line 1")

	// line2/line3가 비어 있으면 해당 영역은 배경 그대로
	for _, y := range []int{500, 750} {
		for x := 0; x < canvasSize; x += 7 {
			require.Equal(t, gradientColor(y, canvasSize), nrgbaAt(img, x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestCreateThumbnailThreeLines(t *testing.T) {
	resp, err := newTestService().CreateThumbnail("MOON STAR SUN", false)
	require.NoError(t, err)
	img := decodeThumbnail(t, resp)

	for i, anchor := range lineAnchors {
		found := false
		for y := anchor - 60; y < anchor+60 && !found; y++ {
			for x := 0; x < canvasSize; x++ {
				if nrgbaAt(img, x, y) == lineColors[i] {
					found = true
					break
				}
			}
		}
		assert.True(t, found, "line %d fill color near y=%d", i+1, anchor)
	}
}

func TestCreateThumbnailIsDeterministic(t *testing.T) {
	service := newTestService()

	first, err := service.CreateThumbnail("same input", false)
	require.NoError(t, err)
	second, err := service.CreateThumbnail("same input", false)
	require.NoError(t, err)

	assert.Equal(t, first.ImageBase64, second.ImageBase64)
}

func TestCreateThumbnailWithWebP(t *testing.T) {
	resp, err := newTestService().CreateThumbnail("hello world", true)
	require.NoError(t, err)

	require.NotEmpty(t, resp.ImageWebPBase64)
	data, err := base64.StdEncoding.DecodeString(resp.ImageWebPBase64)
	require.NoError(t, err)
	assert.Equal(t, resp.ImageWebPSize, len(data))
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.True(t, strings.HasPrefix(resp.ImageDataURL, "data:image/png;base64,"))
}

func TestLoadFaceFromFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "bold.ttf")
	require.NoError(t, os.WriteFile(valid, gobold.TTF, 0o644))

	garbage := filepath.Join(dir, "garbage.ttf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a font"), 0o644))

	face, err := loadFaceFromFile(valid, 80)
	require.NoError(t, err)
	assert.Positive(t, face.Metrics().Ascent.Ceil())
	face.Close()

	_, err = loadFaceFromFile(garbage, 80)
	assert.Error(t, err)

	_, err = loadFaceFromFile(filepath.Join(dir, "missing.ttf"), 80)
	assert.Error(t, err)
}

func TestLoadFaceFallsBack(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a font"), 0o644))

	tests := []struct {
		name  string
		paths []string
	}{
		{name: "no candidates", paths: nil},
		{name: "missing files", paths: []string{filepath.Join(dir, "a.ttf"), filepath.Join(dir, "b.ttf")}},
		{name: "unparsable file", paths: []string{garbage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face := loadFace(tt.paths, 90)
			require.NotNil(t, face)
			defer face.Close()

			embedded := embeddedFace(90)
			defer embedded.Close()
			assert.Equal(t, embedded.Metrics(), face.Metrics())
		})
	}
}

func TestLineOrigin(t *testing.T) {
	face := embeddedFace(90)
	defer face.Close()

	top := lineOrigin(face, "hello", 250)
	bottom := lineOrigin(face, "hello", 750)
	assert.Equal(t, top.X, bottom.X)
	assert.Equal(t, toFixed(500), bottom.Y-top.Y)

	wide := lineOrigin(face, "hello hello", 250)
	assert.Less(t, wide.X, top.X)
	assert.Greater(t, top.X.Round(), 0)
	assert.Less(t, top.X.Round(), canvasSize/2)
}
