// Package web serves analysis results over HTTP: a JSON API, an SSE
// stream for live updates, and a small embedded UI.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/ritzau/layerlint/pkg/analysis"
	"github.com/ritzau/layerlint/pkg/logging"
	"github.com/ritzau/layerlint/pkg/model"
	"github.com/ritzau/layerlint/pkg/pubsub"
)

//go:embed static/*
var staticFiles embed.FS

// GraphNode represents a module in the dependency graph view.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Layer string `json:"layer"` // top-level segment
}

// GraphEdge represents a classified dependency in the graph view.
type GraphEdge struct {
	Source         string   `json:"source"`
	Target         string   `json:"target"`
	Classification string   `json:"classification"`
	Statements     []string `json:"statements"`
	Files          []string `json:"files"`
}

// GraphData holds the dependency graph for visualization.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Server represents the web server.
type Server struct {
	router    *mux.Router
	publisher *pubsub.SSEPublisher

	mu     sync.RWMutex
	result *analysis.Result
}

// NewServer creates a new web server.
func NewServer() *Server {
	publisher := pubsub.NewSSEPublisher()

	// Late subscribers get the current state, not the history.
	publisher.ConfigureTopic("analysis", pubsub.TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: publisher,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/subscribe/analysis", s.handleSubscribe).Methods("GET")
	s.router.HandleFunc("/api/analysis", s.handleAnalysis).Methods("GET")
	s.router.HandleFunc("/api/graph", s.handleGraph).Methods("GET")
	s.router.HandleFunc("/api/violations", s.handleViolations).Methods("GET")

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logging.Fatal("failed to load embedded static files", "error", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

// SetResult stores a new analysis result and notifies subscribers.
func (s *Server) SetResult(result *analysis.Result) {
	s.mu.Lock()
	s.result = result
	s.mu.Unlock()

	status := pubsub.AnalysisStatus{
		State:      "ready",
		Message:    "analysis complete",
		Modules:    len(result.Modules),
		Edges:      len(result.Edges),
		Violations: len(result.Violations()),
	}
	if err := s.publisher.Publish("analysis", "result", status); err != nil {
		logging.Warn("failed to publish analysis status", "error", err)
	}
}

// Result returns the current result, or nil before the first run.
func (s *Server) Result() *analysis.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Start runs the HTTP server on the given port, blocking.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("web server listening", "addr", addr)
	return http.ListenAndServe(addr, logging.RequestIDMiddleware(s.router))
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	result := s.Result()
	if result == nil {
		http.Error(w, "analysis not ready", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, r, result)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	result := s.Result()
	if result == nil {
		http.Error(w, "analysis not ready", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, r, buildGraphData(result))
}

func (s *Server) handleViolations(w http.ResponseWriter, r *http.Request) {
	result := s.Result()
	if result == nil {
		http.Error(w, "analysis not ready", http.StatusServiceUnavailable)
		return
	}

	violations := make([]GraphEdge, 0)
	for _, edge := range result.Violations() {
		violations = append(violations, toGraphEdge(edge))
	}
	writeJSON(w, r, violations)
}

// handleSubscribe streams analysis updates as server-sent events.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub, err := s.publisher.Subscribe(r.Context(), "analysis")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.Warn("failed to write SSE event", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func buildGraphData(result *analysis.Result) *GraphData {
	data := &GraphData{
		Nodes: make([]GraphNode, 0, len(result.Modules)),
		Edges: make([]GraphEdge, 0, len(result.Edges)),
	}
	for _, module := range result.Modules {
		data.Nodes = append(data.Nodes, GraphNode{
			ID:    string(module),
			Label: string(module),
			Layer: module.TopLevel(),
		})
	}
	for _, edge := range result.Edges {
		data.Edges = append(data.Edges, toGraphEdge(edge))
	}
	return data
}

func toGraphEdge(edge *model.Edge) GraphEdge {
	return GraphEdge{
		Source:         string(edge.Source),
		Target:         string(edge.Target),
		Classification: string(edge.Classification),
		Statements:     edge.Evidence.SortedStatements(),
		Files:          edge.Evidence.SortedFiles(),
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}
