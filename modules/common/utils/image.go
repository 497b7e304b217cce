package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"github.com/sirupsen/logrus"
)

// DataURLPrefix - PNG data URL 접두사
const DataURLPrefix = "data:image/png;base64,"

// ConvertImageToBase64 - 이미지 바이너리를 base64로 변환
func ConvertImageToBase64(imageData []byte) string {
	base64Str := base64.StdEncoding.EncodeToString(imageData)
	logrus.Debugf("🔄 Image converted to base64: %d chars (preview: %s...)",
		len(base64Str),
		base64Str[:min(50, len(base64Str))])
	return base64Str
}

// BuildDataURL - base64 PNG로 data URL 생성
func BuildDataURL(base64Str string) string {
	return DataURLPrefix + base64Str
}

// EncodePNG - 이미지를 PNG 바이너리로 인코딩
// quality는 무손실 PNG 인코더에서 무시되지만 그대로 전달한다.
func EncodePNG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebP - 이미지를 손실 WebP로 인코딩
func EncodeWebP(img image.Image, quality float32) ([]byte, error) {
	logrus.Debugf("🔄 Encoding WebP (quality: %.1f)", quality)

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	return webpBuffer.Bytes(), nil
}
