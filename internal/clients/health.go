package clients

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 2 * time.Second

// HealthProbe is a cheap GET against one upstream route.
type HealthProbe struct {
	Name   string
	Client *Client
	Path   string
}

type HealthResult struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"statusCode,omitempty"`
	LatencyMS  int64  `json:"latencyMs"`
	Error      string `json:"error,omitempty"`
}

// Check runs the probe anonymously. Any 2xx counts as healthy.
func (p HealthProbe) Check(ctx context.Context) HealthResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	res := HealthResult{Name: p.Name}
	start := time.Now()
	resp, err := p.Client.Do(ctx, http.MethodGet, p.Path, "", "", nil, nil)
	res.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	res.OK = resp.StatusCode/100 == 2
	return res
}
