package gonumplot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"regexp"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Viewer protocol events.
const (
	EventFigure = "figure"
	EventShown  = "figure:shown"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName turns a figure id into a file name without extension.
func FileName(id string) string {
	return unsafeChars.ReplaceAllString(id, "_")
}

func (b *Backend) display(f *Figure) (any, error) {
	switch b.cfg.Mode {
	case ModeFile:
		path := filepath.Join(b.outputDir(), FileName(f.id)+".png")
		if err := f.Export(path, nil); err != nil {
			return nil, err
		}
		b.logger.Info("Figure written.", "figure", f.id, "path", path)
		return path, nil
	case ModeSocketIO:
		svg, err := f.encode("svg", nil)
		if err != nil {
			return nil, fmt.Errorf("display %q: %w", f.id, err)
		}
		if err := b.viewer.push(f.id, svg); err != nil {
			return nil, fmt.Errorf("display %q: %w", f.id, err)
		}
		return f.id, nil
	}
	// Interactive modes have no display primitive of their own.
	return f, nil
}

// viewer pushes rendered figures to a socket.io viewer and waits for it to
// acknowledge each one.
type viewer struct {
	baseURL   string
	path      string
	namespace string
	timeout   time.Duration
	logger    *slog.Logger
}

func newViewer(cfg Config, logger *slog.Logger) (*viewer, error) {
	parsedURL, err := url.Parse(cfg.ViewerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse viewer URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("viewer URL %q needs a scheme and a host", cfg.ViewerURL)
	}
	return &viewer{
		baseURL:   fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host),
		path:      parsedURL.Path,
		namespace: cfg.ViewerNamespace,
		timeout:   cfg.ViewerTimeout,
		logger:    logger.With("viewer", cfg.ViewerURL),
	}, nil
}

// push sends one figure and blocks until the viewer reports it shown, the
// connection fails or the timeout expires.
func (v *viewer) push(id string, svg []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()
	logger := v.logger.With("figure", id)

	opts := socket.DefaultOptions()
	if v.path != "" && v.path != "/" {
		opts.SetPath(v.path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(v.baseURL, opts)
	io := manager.Socket(v.namespace, opts)
	defer io.Disconnect()

	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to viewer.", "sid", io.Id())
		payload := map[string]any{"id": id, "svg": string(svg)}
		if err := io.Emit(EventFigure, payload); err != nil {
			finish(fmt.Errorf("failed to emit figure: %w", err))
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection refused")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		finish(fmt.Errorf("socket.io connection failed: %w", err))
	})
	io.On(types.EventName(EventShown), func(data ...any) {
		if len(data) > 0 {
			if ack, ok := data[0].(map[string]any); ok && ack["id"] != nil && ack["id"] != id {
				return
			}
		}
		logger.Debug("Viewer acknowledged figure.")
		finish(nil)
	})

	io.Connect()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("timed out after %v waiting for %q", v.timeout, EventShown)
	}
}
