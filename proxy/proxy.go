package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/net/netutil"

	"github.com/team-telnyx/openrpc-proxy/jsonrpc"
)

// proxy is the long-lived state behind one Serve call: the origin it
// forwards to, the shared client used to reach it, and the checker and
// logger consulted for every exchange.
type proxy struct {
	origin *url.URL
	client *http.Client
	cfg    Config
}

// Serve binds cfg.LocalAddr, forwards every request to cfg.Origin, and
// blocks until ctx is cancelled or a fatal listener error occurs. A first
// SIGINT/SIGTERM begins a graceful shutdown (stop accepting, drain
// in-flight requests); a second forces an immediate close.
func Serve(ctx context.Context, cfg Config) error {
	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return fmt.Errorf("parsing origin %q: %w", cfg.Origin, err)
	}

	ln, err := net.Listen("tcp", cfg.LocalAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.LocalAddr, err)
	}
	concurrency := cfg.Concurrency
	if concurrency == 0 {
		concurrency = runtime.NumCPU()
	}
	ln = netutil.LimitListener(ln, concurrency)

	p := &proxy{
		origin: origin,
		client: &http.Client{Timeout: cfg.OriginTimeout},
		cfg:    cfg,
	}

	srv := &http.Server{
		Handler: h2c.NewHandler(http.HandlerFunc(p.handle), &http2.Server{}),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	p.logServe("listening", zap.String("addr", cfg.LocalAddr), zap.String("origin", cfg.Origin))

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
		return shutdown(srv, context.Background(), p, sigCh, serveErr)
	case sig := <-sigCh:
		p.logShutdown("received signal, draining connections", zap.String("signal", sig.String()))
		return shutdown(srv, context.Background(), p, sigCh, serveErr)
	}
}

// shutdown implements the two-phase stop: Shutdown drains in-flight
// requests while refusing new ones; a second signal escalates to a hard
// Close. The drain itself has no deadline beyond ctx.
func shutdown(srv *http.Server, ctx context.Context, p *proxy, sigCh <-chan os.Signal, serveErr <-chan error) error {
	done := make(chan error, 1)
	go func() { done <- srv.Shutdown(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		p.logShutdown("drained all connections")
		return nil
	case <-sigCh:
		p.logShutdown("received second signal, closing immediately")
		if err := srv.Close(); err != nil {
			return fmt.Errorf("forced close: %w", err)
		}
		<-serveErr
		return nil
	}
}

var connCounter int64

func (p *proxy) handle(w http.ResponseWriter, r *http.Request) {
	connID := atomic.AddInt64(&connCounter, 1)
	p.logAccept("accepted request", zap.Int64("id", connID), zap.String("method", r.Method), zap.String("path", r.URL.Path))

	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading request body", http.StatusBadGateway)
		return
	}
	r.Body.Close()

	fwd, err := p.buildForwardRequest(r, reqBody)
	if err != nil {
		http.Error(w, "building forward request", http.StatusBadGateway)
		return
	}

	resp, err := p.client.Do(fwd)
	if err != nil {
		p.logAccept("origin request failed", zap.Int64("id", connID), zap.Error(err))
		http.Error(w, "origin unreachable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		http.Error(w, "reading origin response", http.StatusBadGateway)
		return
	}

	p.validate(connID, reqBody, respBody)

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	w.Write(respBody)
}

func (p *proxy) buildForwardRequest(r *http.Request, body []byte) (*http.Request, error) {
	target := *p.origin

	fwd, err := http.NewRequest(r.Method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	fwd.Header = r.Header.Clone()
	return fwd, nil
}

// validate best-effort parses both sides of the exchange as JSON-RPC and,
// when the request parses, the method is known to the checker, and the
// response body either parses or is empty (checked as "no response"), logs
// every Annotation found. Parse failures are logged to TargetSkip and never
// block forwarding — the checker is advisory only.
func (p *proxy) validate(connID int64, reqBody, respBody []byte) {
	if p.cfg.Checker == nil {
		return
	}

	req, err := jsonrpc.ParseRequest(reqBody)
	if err != nil {
		p.logSkip("request did not parse as jsonrpc", zap.Int64("id", connID), zap.Error(err))
		return
	}

	method, ok := p.cfg.Checker.Lookup(req.Method)
	if !ok {
		p.logSkip("method not in document", zap.Int64("id", connID), zap.String("method", req.Method))
		return
	}

	var resp *jsonrpc.Response
	if len(bytes.TrimSpace(respBody)) > 0 {
		parsed, err := jsonrpc.ParseResponse(respBody)
		if err != nil {
			p.logSkip("response did not parse as jsonrpc", zap.Int64("id", connID), zap.Error(err))
			return
		}
		resp = parsed
	}

	annotations := method.Check(req, resp)
	if len(annotations) == 0 {
		p.logValidate("conformant", zap.Int64("id", connID), zap.String("method", req.Method))
		return
	}

	kinds := make([]string, len(annotations))
	for i, a := range annotations {
		kinds[i] = a.Kind.String()
	}
	p.logValidate("non-conformant",
		zap.Int64("id", connID),
		zap.String("method", req.Method),
		zap.Strings("annotations", kinds),
	)
}

func (p *proxy) logServe(msg string, fields ...zap.Field) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Serve.Info(msg, fields...)
	}
}

func (p *proxy) logAccept(msg string, fields ...zap.Field) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Accept.Info(msg, fields...)
	}
}

func (p *proxy) logValidate(msg string, fields ...zap.Field) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Validate.Info(msg, fields...)
	}
}

func (p *proxy) logSkip(msg string, fields ...zap.Field) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Skip.Warn(msg, fields...)
	}
}

func (p *proxy) logShutdown(msg string, fields ...zap.Field) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Shutdown.Info(msg, fields...)
	}
}
