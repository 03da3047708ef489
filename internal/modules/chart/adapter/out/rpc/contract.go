package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "renderer"
	serviceName       = "topicmap.renderer.v1.Renderer"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodRender      = "/" + serviceName + "/Render"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "TOPICMAP_RENDERER",
	MagicCookieValue: "topicmap",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	ContentType string `json:"content_type"`
}

// RenderRequest carries the figure as plotly JSON.
type RenderRequest struct {
	FigureJSON string `json:"figure_json"`
}

type RenderResponse struct {
	Document    []byte `json:"document"`
	ContentType string `json:"content_type"`
}

type RendererServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error)
}

type RendererClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error)
}

type rendererClient struct {
	conn *grpc.ClientConn
}

func NewRendererClient(conn *grpc.ClientConn) RendererClient {
	return &rendererClient{conn: conn}
}

func (c *rendererClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rendererClient) Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error) {
	out := &RenderResponse{}
	if err := c.conn.Invoke(ctx, methodRender, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterRendererServer(server grpc.ServiceRegistrar, impl RendererServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*RendererServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Render",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &RenderRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Render(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRender}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*RenderRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Render(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "topicmap/renderer/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl RendererServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterRendererServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewRendererClient(conn), nil
}

func PluginMap(impl RendererServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
