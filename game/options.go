package game

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/luca-patrignani/token-ring/network"
)

type Transport int

const (
	// TransportLocal keeps every actor in memory.
	TransportLocal Transport = iota
	// TransportHTTP gives every actor its own HTTP server on localhost.
	TransportHTTP
)

func (t Transport) String() string {
	switch t {
	case TransportLocal:
		return "local"
	case TransportHTTP:
		return "http"
	default:
		return fmt.Sprintf("transport(%d)", int(t))
	}
}

// ParseTransport accepts the names returned by String.
func ParseTransport(s string) (Transport, error) {
	switch strings.ToLower(s) {
	case "local":
		return TransportLocal, nil
	case "http":
		return TransportHTTP, nil
	default:
		return 0, fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, s)
	}
}

type options struct {
	logger       *slog.Logger
	recorder     Recorder
	decrementers func(index int) Decrementer
	transport    Transport
	tls          bool
	retry        network.RetryPolicy
	timeout      time.Duration
}

type Option func(options) options

func defaultOptions() options {
	return options{
		logger:       slog.Default(),
		decrementers: func(int) Decrementer { return NewRandomDecrementer() },
		transport:    TransportLocal,
		retry:        network.DefaultRetryPolicy,
		timeout:      2 * time.Second,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		o = opt(o)
	}
	return o
}

func WithLogger(logger *slog.Logger) Option {
	return func(o options) options {
		o.logger = logger
		return o
	}
}

// WithRecorder sets the journal of a Node. Play always records into the
// ledger it returns.
func WithRecorder(r Recorder) Option {
	return func(o options) options {
		o.recorder = r
		return o
	}
}

// WithDecrementers replaces the random draws: the actor with index i uses
// f(i).
func WithDecrementers(f func(index int) Decrementer) Option {
	return func(o options) options {
		o.decrementers = f
		return o
	}
}

func WithTransport(t Transport) Option {
	return func(o options) options {
		o.transport = t
		return o
	}
}

// WithTLS makes HTTP actors talk over mutual TLS with self signed
// certificates.
func WithTLS(enabled bool) Option {
	return func(o options) options {
		o.tls = enabled
		return o
	}
}

func WithRetry(policy network.RetryPolicy) Option {
	return func(o options) options {
		o.retry = policy
		return o
	}
}

// WithTimeout bounds a single HTTP request.
func WithTimeout(timeout time.Duration) Option {
	return func(o options) options {
		o.timeout = timeout
		return o
	}
}
