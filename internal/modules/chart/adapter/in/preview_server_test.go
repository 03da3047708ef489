package in_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	chartin "topicmap/internal/modules/chart/adapter/in"
	"topicmap/internal/modules/chart/dto"
	apperrors "topicmap/internal/platform/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	figures map[string]dto.FigureOutput
	palette []dto.TopicColor
}

func (f *fakeUsecase) Render(_ context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	return dto.RenderOutput{Path: input.Output, Format: input.Format}, nil
}

func (f *fakeUsecase) Spec(_ context.Context, input dto.SpecInput) (dto.SpecOutput, error) {
	return dto.SpecOutput{Format: input.Format, Body: []byte("{}")}, nil
}

func (f *fakeUsecase) Palette(_ context.Context, _ dto.TopicsInput) ([]dto.TopicColor, error) {
	return f.palette, nil
}

func (f *fakeUsecase) ReadFigure(_ context.Context, path string) (dto.FigureOutput, error) {
	fig, ok := f.figures[path]
	if !ok {
		return dto.FigureOutput{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
	}
	return fig, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPreviewServerRoutes(t *testing.T) {
	t.Parallel()
	doc := filepath.Join(t.TempDir(), "map.html")
	require.NoError(t, os.WriteFile(doc, []byte("<!DOCTYPE html><p>map</p>"), 0o644))
	usecase := &fakeUsecase{figures: map[string]dto.FigureOutput{
		doc: {Path: doc, JSON: []byte(`{"data":[],"layout":{}}`)},
	}}
	router := chartin.NewCLIHandler(usecase).PreviewServer(doc).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>map</p>")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/figure.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"layout":{}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPreviewServerServesSiblingPlotly(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	doc := filepath.Join(dir, "map.html")
	require.NoError(t, os.WriteFile(doc, []byte(`<script src="plotly.min.js"></script>`), 0o644))
	usecase := &fakeUsecase{figures: map[string]dto.FigureOutput{doc: {Path: doc}}}
	router := chartin.NewPreviewServer(usecase, doc).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plotly.min.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "plotly.min.js not found")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "plotly.min.js"), []byte("window.Plotly={};"), 0o644))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plotly.min.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "window.Plotly={};", rec.Body.String())
}

func TestPreviewServerMissingDocument(t *testing.T) {
	t.Parallel()
	router := chartin.NewPreviewServer(&fakeUsecase{}, "/nowhere/map.html").Router()

	for _, target := range []string{"/", "/figure.json"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "not found", target)
	}
}

func TestCLIHandlerDelegates(t *testing.T) {
	t.Parallel()
	usecase := &fakeUsecase{palette: []dto.TopicColor{{Code: 0, Tick: "topic_0", Color: "#db5f57"}}}
	h := chartin.NewCLIHandler(usecase)

	out, err := h.Render(context.Background(), dto.RenderInput{Output: "map.html", Format: "html"})
	require.NoError(t, err)
	assert.Equal(t, "map.html", out.Path)

	colors, err := h.Palette(context.Background(), dto.TopicsInput{Count: 1})
	require.NoError(t, err)
	assert.Equal(t, usecase.palette, colors)

	_, err = h.Figure(context.Background(), "missing.html")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
