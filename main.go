package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"quel-thumbnail-server/modules/common/config"
	"quel-thumbnail-server/modules/common/logger"
	"quel-thumbnail-server/modules/thumbnail"
)

var startTime = time.Now()

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		thumbnail.SetCORSHeaders(w)

		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 요청 ID 부여 (클라이언트가 보낸 X-Request-ID가 있으면 그대로 사용)
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), requestID)))

		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Debug("📡 Request handled")
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "quel-thumbnail",
		"uptime":  time.Since(startTime).Round(time.Second).String(),
	})
}

func newRouter(cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	// 미들웨어 적용
	r.Use(withRequestID)
	r.Use(enableCORS)

	// 라우트 설정
	r.HandleFunc("/", healthCheck).Methods(http.MethodGet)
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	thumbnailHandler := thumbnail.NewHandler(thumbnail.NewService(cfg.WebPQuality), cfg.MaxBodyBytes)
	thumbnailHandler.RegisterRoutes(r)

	return r
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("❌ Failed to load config: %v", err)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatalf("❌ Failed to set up logger: %v", err)
	}
	cfg.LogSummary()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg),
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	go func() {
		logrus.Infof("🚀 Quel Thumbnail Server starting on port %s", cfg.Port)
		logrus.Infof("🖼️  Thumbnail endpoint: http://localhost:%s/api/thumbnail", cfg.Port)
		logrus.Infof("❤️  Health check: http://localhost:%s/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Info("🛑 Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("❌ Error on server shutdown: %v", err)
	}
}
