package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	chartout "topicmap/internal/modules/chart/adapter/out"
	"topicmap/internal/modules/chart/adapter/out/rpc"
	"topicmap/internal/modules/chart/domain"

	"github.com/hashicorp/go-plugin"
)

// server renders the same standalone HTML document as the built-in renderer.
type server struct {
	html *chartout.HTMLRenderer
}

func (s *server) GetMetadata(_ context.Context, _ *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{Name: "reference", Version: "1.0.0", ContentType: "text/html"}, nil
}

func (s *server) Render(_ context.Context, in *rpc.RenderRequest) (*rpc.RenderResponse, error) {
	var fig domain.Figure
	if err := json.Unmarshal([]byte(in.FigureJSON), &fig); err != nil {
		return nil, fmt.Errorf("decode figure: %w", err)
	}
	var buf bytes.Buffer
	if err := s.html.WriteDocument(&buf, fig); err != nil {
		return nil, err
	}
	return &rpc.RenderResponse{Document: buf.Bytes(), ContentType: "text/html"}, nil
}

func main() {
	html, err := chartout.NewHTMLRenderer(chartout.PlotlyCDN, "")
	if err != nil {
		panic(err)
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: rpc.HandshakeConfig,
		Plugins:         rpc.PluginMap(&server{html: html}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
