package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker reports the health of a single dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc struct {
	CheckerName string
	CheckFn     func(ctx context.Context) error
}

func (c CheckerFunc) Name() string                    { return c.CheckerName }
func (c CheckerFunc) Check(ctx context.Context) error { return c.CheckFn(ctx) }

// Handler serves liveness and readiness endpoints.
type Handler struct {
	serviceName string
	checkers    []Checker
	timeout     time.Duration
}

// NewHandler creates a health handler for the given service with optional
// readiness checkers.
func NewHandler(serviceName string, checkers ...Checker) *Handler {
	return &Handler{
		serviceName: serviceName,
		checkers:    checkers,
		timeout:     5 * time.Second,
	}
}

type status struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Live always reports the process as alive.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, status{Status: "ok", Service: h.serviceName})
}

// Ready runs all checkers concurrently and reports 503 if any fail.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	checks := make(map[string]string, len(h.checkers))
	healthy := true

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, checker := range h.checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()

			result := "ok"
			if err := c.Check(ctx); err != nil {
				result = err.Error()
			}

			mu.Lock()
			checks[c.Name()] = result
			if result != "ok" {
				healthy = false
			}
			mu.Unlock()
		}(checker)
	}

	wg.Wait()

	code := http.StatusOK
	st := "ok"
	if !healthy {
		code = http.StatusServiceUnavailable
		st = "degraded"
	}

	writeStatus(w, code, status{Status: st, Service: h.serviceName, Checks: checks})
}

func writeStatus(w http.ResponseWriter, code int, s status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(s)
}
