package handlers

import (
	"net/http"
	"sync"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/clients"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/http/dto"
)

const serviceName = "cafeteria-web"

type HealthHandler struct {
	Probes []clients.HealthProbe
}

func (h *HealthHandler) Service(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Service: serviceName})
}

// Upstreams probes every dependency in parallel. The overall status is
// "degraded" when any probe fails.
func (h *HealthHandler) Upstreams(w http.ResponseWriter, r *http.Request) {
	results := make([]clients.HealthResult, len(h.Probes))

	var wg sync.WaitGroup
	wg.Add(len(h.Probes))
	for i := range h.Probes {
		go func() {
			defer wg.Done()
			results[i] = h.Probes[i].Check(r.Context())
		}()
	}
	wg.Wait()

	status := "ok"
	for _, res := range results {
		if !res.OK {
			status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, dto.UpstreamsHealthResponse{
		Status:   status,
		Service:  serviceName,
		Upstream: results,
	})
}
