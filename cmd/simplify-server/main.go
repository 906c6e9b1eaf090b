// cmd/simplify-server exposes the rewrite search over HTTP for agent
// frameworks and other non-Go callers, adapted from the teacher's
// standalone MCP server (cmd/mcp-server in the upstream gosymbol repo)
// to this module's domain.
//
// Tool call endpoint: POST /simplify
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/njchilds90/rewritesearch"
	"github.com/njchilds90/rewritesearch/cache"
	"github.com/njchilds90/rewritesearch/parser"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// simplifyRequest is the /simplify request body.
type simplifyRequest struct {
	Expression  string `json:"expression"`
	CostCeiling int    `json:"cost_ceiling,omitempty"`
	StepLimit   int    `json:"step_limit,omitempty"`
	TimeoutMS   int    `json:"timeout_ms,omitempty"`
}

// simplifyResponse is the /simplify response body.
type simplifyResponse struct {
	Solved    bool   `json:"solved"`
	Path      string `json:"path,omitempty"`
	Steps     int    `json:"steps"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id"`
}

func main() {
	if err := newServerCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newServerCmd() *cobra.Command {
	var (
		port      int
		cachePath string
	)

	cmd := &cobra.Command{
		Use:   "simplify-server",
		Short: "serve the rewrite search over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(port, cachePath)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().StringVar(&cachePath, "cache", "", "path to a SQLite memoization database (empty disables caching)")

	return cmd
}

func runServer(port int, cachePath string) error {
	var store *cache.Store
	if cachePath != "" {
		s, err := cache.New(cachePath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	reg := prometheus.NewRegistry()
	metrics := rewritesearch.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("/simplify", simplifyHandler(store, metrics))
	mux.HandleFunc("/schema", schemaHandler)
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf(":%d", port)
	log.Printf("rewritesearch server listening on %s", addr)
	log.Printf("  POST /simplify — run the rewrite search against an expression")
	log.Printf("  GET  /schema   — tool schema for agent registration")
	log.Printf("  GET  /health   — health check")
	log.Printf("  GET  /metrics  — Prometheus metrics")

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func simplifyHandler(store *cache.Store, metrics *rewritesearch.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in /simplify: %v\n%s", rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req simplifyRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		resp := doSimplify(req, store, metrics)
		status := http.StatusOK
		if resp.Error != "" && !resp.Solved {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, resp)
	}
}

func doSimplify(req simplifyRequest, store *cache.Store, metrics *rewritesearch.Metrics) simplifyResponse {
	var key string
	if store != nil {
		key = cache.Key(req.Expression, fmt.Sprintf("cc%d-sl%d", req.CostCeiling, req.StepLimit))
		if entry, ok, err := store.Get(key); err == nil && ok {
			return simplifyResponse{Solved: entry.Solved, Path: entry.PathText, Steps: 0}
		}
	}

	symCache := rewritesearch.NewSymbolCache()
	root, err := parser.ParseModel(symCache, req.Expression)
	if err != nil {
		return simplifyResponse{Error: err.Error()}
	}

	ctx := context.Background()
	if req.TimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMS)*time.Millisecond)
		defer cancel()
	}

	outcome := rewritesearch.SearchModel(root, rewritesearch.Options{
		MaxCost:  req.CostCeiling,
		MaxSteps: req.StepLimit,
		Context:  ctx,
		Metrics:  metrics,
	})

	resp := simplifyResponse{Solved: outcome.Solved, Steps: outcome.Steps, RequestID: outcome.RequestID}
	if !outcome.Solved {
		if outcome.Err != nil {
			resp.Error = outcome.Err.Error()
		}
		return resp
	}

	resp.Path = rewritesearch.FormatPath(outcome.Path)
	if store != nil {
		last := outcome.Path[len(outcome.Path)-1]
		_ = store.Put(key, resp.Path, true, last.TotalApproxCost())
	}
	return resp
}

func schemaHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "simplify",
		"description": "Simplify an algebraic expression over integers and named variables via cost-directed rewrite search.",
		"parameters": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression":   map[string]any{"type": "string"},
				"cost_ceiling": map[string]any{"type": "integer"},
				"step_limit":   map[string]any{"type": "integer"},
				"timeout_ms":   map[string]any{"type": "integer"},
			},
			"required": []string{"expression"},
		},
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
