// Package proxy implements the validating reverse proxy: it forwards every
// HTTP request to an origin server verbatim, while best-effort parsing the
// JSON-RPC envelope on both sides and running it through a checker.Checker
// for advisory logging. It never alters the bytes it forwards.
package proxy

import (
	"time"

	"github.com/team-telnyx/openrpc-proxy/checker"
)

// Config carries everything Serve needs to run one proxy instance.
type Config struct {
	// LocalAddr is the address to listen on, e.g. ":8080".
	LocalAddr string

	// Origin is the URL every request is forwarded to. It replaces the
	// incoming request's URI wholesale, including Origin's own path and
	// query string; only the method, headers, and body are carried over
	// from the incoming request unchanged.
	Origin string

	// Concurrency caps the number of connections served at once. Zero
	// means the number of logical CPUs (runtime.NumCPU()).
	Concurrency int

	// Checker, when non-nil, is consulted for every exchange whose request
	// parses as JSON-RPC and whose response body is either empty or parses
	// as a JSON-RPC response.
	Checker *checker.Checker

	// OriginTimeout bounds how long a single forwarded request may take.
	// Zero means no timeout.
	OriginTimeout time.Duration

	// Logger receives structured events for each accepted connection and
	// validated exchange. A nil Logger disables logging.
	Logger *Logger
}
