package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"topicmap/internal/modules/chart/adapter/out/rpc"
	"topicmap/internal/modules/chart/domain"
	apperrors "topicmap/internal/platform/errors"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 30 * time.Second
)

// PluginRenderer delegates document production to an external renderer
// process speaking the rpc contract over go-plugin.
type PluginRenderer struct {
	binary       string
	startTimeout time.Duration
	callTimeout  time.Duration
	logOutput    io.Writer
	sha256       string
}

func NewPluginRenderer(binary string, logOutput io.Writer) *PluginRenderer {
	if logOutput == nil {
		logOutput = io.Discard
	}
	return &PluginRenderer{
		binary:       binary,
		startTimeout: defaultStartTimeout,
		callTimeout:  defaultCallTimeout,
		logOutput:    logOutput,
	}
}

// WithChecksum makes every launch verify the binary against a hex sha256.
func (p *PluginRenderer) WithChecksum(sum string) *PluginRenderer {
	p.sha256 = strings.ToLower(strings.TrimSpace(sum))
	return p
}

func (p *PluginRenderer) Format() domain.Format {
	return domain.FormatPlugin
}

func (p *PluginRenderer) Metadata(ctx context.Context) (rpc.Metadata, error) {
	client, closeFn, err := p.connect()
	if err != nil {
		return rpc.Metadata{}, err
	}
	defer closeFn()
	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return rpc.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return *meta, nil
}

func (p *PluginRenderer) Render(ctx context.Context, fig domain.Figure, dest string) error {
	raw, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	client, closeFn, err := p.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	response, err := client.Render(callCtx, &rpc.RenderRequest{FigureJSON: string(raw)})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: renderer timed out", apperrors.ErrPluginUnavailable)
		}
		return fmt.Errorf("plugin render: %w", err)
	}
	if len(response.Document) == 0 {
		return fmt.Errorf("plugin render: empty document")
	}
	return writeAtomic(dest, func(w io.Writer) error {
		_, err := w.Write(response.Document)
		return err
	})
}

func (p *PluginRenderer) connect() (rpc.RendererClient, func(), error) {
	if strings.TrimSpace(p.binary) == "" {
		return nil, nil, fmt.Errorf("%w: no renderer binary configured", apperrors.ErrPluginUnavailable)
	}
	if err := p.verifyChecksum(); err != nil {
		return nil, nil, err
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  rpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          rpc.PluginMap(nil),
		Cmd:              exec.Command(p.binary),
		Managed:          true,
		StartTimeout:     p.startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Name: "renderer", Output: p.logOutput, Level: hclog.Warn}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("%w: start renderer: %v", apperrors.ErrPluginUnavailable, err)
	}
	raw, err := rpcClient.Dispense(rpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense renderer: %w", err)
	}
	typed, ok := raw.(rpc.RendererClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("renderer rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (p *PluginRenderer) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, p.callTimeout)
}

func (p *PluginRenderer) verifyChecksum() error {
	if p.sha256 == "" {
		return nil
	}
	payload, err := os.ReadFile(p.binary)
	if err != nil {
		return fmt.Errorf("%w: read renderer binary: %v", apperrors.ErrPluginUnavailable, err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != p.sha256 {
		return fmt.Errorf("%w: checksum mismatch for %s", apperrors.ErrPluginUnavailable, filepath.Base(p.binary))
	}
	return nil
}
