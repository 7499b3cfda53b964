package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/lo"
	sloghttp "github.com/samber/slog-http"

	feedService "github.com/telewaves/telewaves/internal/modules/feed/service"
	libraryDomain "github.com/telewaves/telewaves/internal/modules/library/domain"
	libraryService "github.com/telewaves/telewaves/internal/modules/library/service"
	mediaDomain "github.com/telewaves/telewaves/internal/modules/media/domain"
	"github.com/telewaves/telewaves/internal/shared/config"
)

// Server handles HTTP requests for the library feed and download journal
type Server struct {
	cfg            *config.Config
	feedService    *feedService.Service
	libraryService *libraryService.Service
	logger         *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, feedService *feedService.Service, libraryService *libraryService.Service) *Server {
	return &Server{
		cfg:            cfg,
		feedService:    feedService,
		libraryService: libraryService,
		logger:         slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start runs the HTTP server until ctx is canceled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// RSS feed over the download journal
	mux.HandleFunc("GET /feed", s.handleFeed)

	// Download journal as JSON
	mux.HandleFunc("GET /downloads", s.handleDownloads)

	// Downloaded files themselves
	mux.Handle("GET /library/", http.StripPrefix("/library/", http.FileServer(http.Dir(s.cfg.DownloadDir))))

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	// Root endpoint with instructions
	mux.HandleFunc("GET /", s.handleRoot)

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Library server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	baseURL := s.cfg.BaseURL
	if baseURL == "" {
		// Fall back to the URL the request came in on
		baseURL = fmt.Sprintf("%s://%s", getScheme(r), r.Host)
	}

	feed, err := s.feedService.GenerateFeed(baseURL)
	if err != nil {
		s.logger.Error("Error generating feed", "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	// Generate RSS XML
	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleDownloads(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	downloads, err := s.libraryService.GetDownloads(limit)
	if err != nil {
		s.logger.Error("Error listing downloads", "error", err)
		http.Error(w, "Failed to list downloads", http.StatusInternalServerError)
		return
	}

	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind, err := mediaDomain.ParseMediaKind(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("unknown media kind %q", raw), http.StatusBadRequest)
			return
		}
		downloads = lo.Filter(downloads, func(d *libraryDomain.Download, _ int) bool {
			return d.Kind == kind
		})
	}
	if downloads == nil {
		downloads = []*libraryDomain.Download{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(downloads); err != nil {
		s.logger.Error("Error encoding downloads", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Telewaves</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0; }
        code { background: #e8e8e8; padding: 2px 6px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>Telewaves Media Library</h1>
    <div class="info">
        <p>This service saves media files sent to your Telegram account.</p>
        <p>RSS feed of recent downloads: <code>/feed</code></p>
        <p>Download journal as JSON: <code>/downloads?limit=50&kind=audio</code></p>
        <p>Saved files: <code>/library/{filename}</code></p>
    </div>
    <p><a href="/health">Health Check</a></p>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
