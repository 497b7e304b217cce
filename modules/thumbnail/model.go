package thumbnail

// ThumbnailRequest - 썸네일 생성 요청 구조체
type ThumbnailRequest struct {
	Keyword     string `json:"keyword"`
	IncludeWebP bool   `json:"include_webp"` // true면 WebP 결과도 함께 반환
}

// Lines - 키워드를 나눈 3줄 텍스트 (빈 줄 포함)
type Lines struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	Line3 string `json:"line3"`
}

// ThumbnailResponse - 썸네일 생성 응답 구조체
type ThumbnailResponse struct {
	Success      bool   `json:"success"`
	ImageBase64  string `json:"image_base64"`
	ImageDataURL string `json:"image_data_url"`
	ImageSize    int    `json:"image_size"` // PNG 원본 바이트 수
	Lines        Lines  `json:"lines"`

	ImageWebPBase64 string `json:"image_webp_base64,omitempty"`
	ImageWebPSize   int    `json:"image_webp_size,omitempty"`
}

// ErrorResponse - 실패 응답 구조체
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
