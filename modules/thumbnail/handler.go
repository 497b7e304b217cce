package thumbnail

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"quel-thumbnail-server/modules/common/fallback"
	"quel-thumbnail-server/modules/common/logger"
)

type renderer interface {
	CreateThumbnail(keyword string, includeWebP bool) (*ThumbnailResponse, error)
}

type Handler struct {
	service      renderer
	maxBodyBytes int64
}

func NewHandler(service *Service, maxBodyBytes int64) *Handler {
	return &Handler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
	}
}

// RegisterRoutes wires thumbnail endpoints.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/thumbnail", h.HandleThumbnail).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/", h.HandleThumbnail).Methods(http.MethodPost, http.MethodOptions)
}

// HandleThumbnail - POST /api/thumbnail
// 키워드로 썸네일 이미지 생성
func (h *Handler) HandleThumbnail(w http.ResponseWriter, r *http.Request) {
	SetCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")

	// OPTIONS 요청 처리
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	// POST만 허용
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := logger.FromContext(r.Context())

	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("❌ [Thumbnail] Panic while generating thumbnail: %v", rec)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Success: false,
				Error:   fmt.Sprint(rec),
			})
		}
	}()

	response, err := h.generate(w, r)
	if err != nil {
		log.Errorf("❌ [Thumbnail] Generation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	log.Infof("✅ [Thumbnail] Response sent: size=%d bytes, lines=[%s | %s | %s]",
		response.ImageSize, response.Lines.Line1, response.Lines.Line2, response.Lines.Line3)

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (*ThumbnailResponse, error) {
	req, err := h.parseRequest(w, r)
	if err != nil {
		return nil, err
	}

	keyword := fallback.SafeString(req.Keyword, DefaultKeyword)

	logger.FromContext(r.Context()).Infof("🎨 [Thumbnail] Processing request: keyword=%s, webp=%v",
		truncateString(keyword, 30), req.IncludeWebP)

	return h.service.CreateThumbnail(keyword, req.IncludeWebP)
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request) (*ThumbnailRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	if !utf8.Valid(body) {
		return nil, errors.New("request body is not valid UTF-8")
	}

	var req *ThumbnailRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if req == nil {
		return nil, errors.New("request body must be a JSON object")
	}

	return req, nil
}

// SetCORSHeaders - 모든 응답에 붙는 CORS 헤더
func SetCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("❌ [Thumbnail] Failed to encode response: %v", err)
	}
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
