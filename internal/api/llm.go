package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukegpt/llmproxy/internal/proxy"
)

// Error tags surfaced to callers. These are wire-visible contract strings.
const (
	errTagUpstream  = "Duke LLM API error"
	errTagTransport = "Failed to reach Duke LLM API"
)

// errorEnvelope is the relay's synthesized error shape. Status carries the
// upstream's code on upstream failures and is omitted on transport failures.
type errorEnvelope struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details"`
}

// NewHandler returns the relay's HTTP surface: one chat-completion route.
// Every other path or method gets the router's stock 404/405.
func NewHandler(f proxy.Forwarder) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(recoverer)

	r.Post("/proxy/llm", handleChat(f))

	return r
}

func handleChat(f proxy.Forwarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		data, err := io.ReadAll(r.Body)
		if err != nil {
			data = nil
		}

		var req proxy.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			// Malformed bodies are never rejected; both fields fall back to
			// their defaults.
			req = proxy.ChatRequest{}
		}

		log := loggerFrom(r.Context())
		log.Info("forwarding chat request", "model", req.ModelLabel())

		res, err := f.Forward(r.Context(), req.ForwardBody())
		if err != nil {
			log.Error("upstream request failed", "error", err)
			writeError(w, http.StatusInternalServerError, errorEnvelope{
				Error:   errTagTransport,
				Details: err.Error(),
			})
			return
		}

		if !res.Successful() {
			log.Warn("upstream returned error status", "status", res.StatusCode)
			writeError(w, res.StatusCode, errorEnvelope{
				Error:   errTagUpstream,
				Status:  res.StatusCode,
				Details: string(res.Body),
			})
			return
		}

		// Parse-check the success body; re-marshaling would reorder keys, so
		// the original bytes are written back instead.
		var probe any
		if err := json.Unmarshal(res.Body, &probe); err != nil {
			log.Error("decoding upstream response failed", "error", err)
			writeError(w, http.StatusInternalServerError, errorEnvelope{
				Error:   errTagTransport,
				Details: fmt.Sprintf("decoding upstream response: %v", err),
			})
			return
		}

		log.Info("upstream responded", "status", res.StatusCode)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(res.StatusCode)
		w.Write(res.Body)
	}
}

func writeError(w http.ResponseWriter, code int, env errorEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(env)
}
