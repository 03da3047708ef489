package in

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	chartin "topicmap/internal/modules/chart/port/in"

	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout = 5 * time.Second
	// Documents rendered in directory mode load plotly from this sibling file.
	plotlyFile = "plotly.min.js"
)

// PreviewServer serves one rendered document over HTTP. The document is read
// from disk on every request so a re-render shows up on reload.
type PreviewServer struct {
	usecase chartin.Usecase
	path    string
}

func NewPreviewServer(usecase chartin.Usecase, path string) *PreviewServer {
	return &PreviewServer{usecase: usecase, path: path}
}

func (s *PreviewServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/", s.document)
	r.GET("/figure.json", s.figure)
	r.GET("/"+plotlyFile, s.plotly)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func (s *PreviewServer) document(c *gin.Context) {
	fig, err := s.usecase.ReadFigure(c.Request.Context(), s.path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.File(fig.Path)
}

func (s *PreviewServer) plotly(c *gin.Context) {
	fig, err := s.usecase.ReadFigure(c.Request.Context(), s.path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	script := filepath.Join(filepath.Dir(fig.Path), plotlyFile)
	if _, err := os.Stat(script); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": plotlyFile + " not found next to " + fig.Path})
		return
	}
	c.Header("Content-Type", "text/javascript; charset=utf-8")
	c.File(script)
}

func (s *PreviewServer) figure(c *gin.Context) {
	fig, err := s.usecase.ReadFigure(c.Request.Context(), s.path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", fig.JSON)
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *PreviewServer) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve preview: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown preview: %w", err)
		}
		return nil
	}
}
