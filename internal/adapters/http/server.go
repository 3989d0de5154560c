package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/absm"
	"github.com/aretw0/absm/internal/presentation/graph"
	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
)

// Server exposes a running machine for inspection.
type Server struct {
	Host     *Host
	Gatherer prometheus.Gatherer
}

// NewHandler creates the HTTP handler for host. A nil gatherer disables /metrics.
func NewHandler(host *Host, gatherer prometheus.Gatherer) http.Handler {
	s := &Server{Host: host, Gatherer: gatherer}
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/machine", s.GetMachine)
	r.Get("/definition", s.GetDefinition)
	r.Get("/graph", s.GetGraph)
	r.Get("/parameters", s.GetParameters)
	r.Put("/parameters", s.PutParameters)
	r.Post("/reset", s.Reset)
	r.Get("/events", s.SubscribeEvents)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Host.logger.Error("response encode failed", "error", err)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":     "absm-http",
		"version": absm.Version,
	})
}

// GetMachine handles the GET /machine request with a runtime snapshot.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	var snap absm.Snapshot
	s.Host.With(func(e *absm.Engine) { snap = e.Snapshot() })
	s.writeJSON(w, snap)
}

// GetDefinition handles the GET /definition request.
func (s *Server) GetDefinition(w http.ResponseWriter, r *http.Request) {
	var def *definition.Definition
	s.Host.With(func(e *absm.Engine) { def = e.Definition() })
	s.writeJSON(w, def)
}

// GetGraph handles the GET /graph request with a Mermaid diagram of the live machine.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var out string
	s.Host.With(func(e *absm.Engine) {
		out = graph.GenerateMermaid(e.Definition(), graph.OverlayFromMachine(e.Machine()))
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, out)
}

// GetParameters handles the GET /parameters request.
func (s *Server) GetParameters(w http.ResponseWriter, r *http.Request) {
	var params map[string]any
	s.Host.With(func(e *absm.Engine) { params = e.Snapshot().Parameters })
	s.writeJSON(w, params)
}

// PutParameters handles the PUT /parameters request. The body maps names to values;
// booleans become rules, integers indices and other numbers weights. A typed object
// such as {"weight": 1} forces the kind.
func (s *Server) PutParameters(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := make(map[string]domain.Parameter, len(body))
	for name, raw := range body {
		p, err := definition.ParameterFromValue(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("parameter %q: %v", name, err), http.StatusBadRequest)
			return
		}
		updates[name] = p
	}

	var params map[string]any
	s.Host.With(func(e *absm.Engine) {
		for name, p := range updates {
			e.SetParameter(name, p)
		}
		params = e.Snapshot().Parameters
	})
	s.writeJSON(w, params)
}

// Reset handles the POST /reset request.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	var snap absm.Snapshot
	s.Host.With(func(e *absm.Engine) {
		e.Reset()
		snap = e.Snapshot()
	})
	s.writeJSON(w, snap)
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Host.Streams().Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
