package connectivity

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	defaultProbeInterval = 15 * time.Second
	defaultProbeTimeout  = 5 * time.Second
)

// ProberConfig configures the HTTP prober.
type ProberConfig struct {
	// Endpoint is the URL probed for reachability, typically the backend's
	// health route.
	Endpoint string
	// Interval between probes. Defaults to 15s.
	Interval time.Duration
	// HTTPClient used for probes. When nil a client with a short timeout
	// is used so a dead network cannot stall the probe loop.
	HTTPClient *http.Client
}

// Prober is the default EventSource: it periodically issues a cheap request
// against the backend and reports reachability. Any HTTP response counts as
// online; only transport-level failure counts as offline.
type Prober struct {
	endpoint   string
	interval   time.Duration
	httpClient *http.Client
}

// NewProber creates a prober for the given endpoint.
func NewProber(cfg ProberConfig) *Prober {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultProbeTimeout}
	}

	return &Prober{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		interval:   interval,
		httpClient: httpClient,
	}
}

// Online probes once and reports the result.
func (p *Prober) Online() bool {
	return p.probe(context.Background())
}

// Listen probes on a fixed interval until ctx is done, reporting every
// observation to fn.
func (p *Prober) Listen(ctx context.Context, fn func(online bool)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(p.probe(ctx))
		}
	}
}

func (p *Prober) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	// Reachability only; a 5xx backend is still a reachable backend.
	return true
}
