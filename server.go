package main

import (
	"context"
	"encoding/json"
	"net/http"

	logcontext "github.com/rpatil26/travelbot/context"
	"github.com/rpatil26/travelbot/dialogflow"
	"github.com/rpatil26/travelbot/log"
)

// dispatcher is what the webhook needs from the fulfillment layer
type dispatcher interface {
	Dispatch(ctx context.Context, req *dialogflow.WebhookRequest) string
}

type webhookServer struct {
	fulfiller dispatcher
}

// handleWebhook decodes the fulfillment payload, dispatches the intent
// and writes the reply envelope. Handlers never fail; only a malformed
// payload yields a 500.
func (s *webhookServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	requestID := logcontext.NewRequestID()
	ctx := logcontext.WithRequestID(r.Context(), requestID)

	var req dialogflow.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf(ctx, "failed to decode webhook payload: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	intent := req.IntentName()
	log.Infof(ctx, "dispatching intent %q", intent)

	reply := s.fulfiller.Dispatch(ctx, &req)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dialogflow.NewTextResponse(reply)); err != nil {
		log.Errorf(ctx, "failed to write webhook response: %v", err)
	}
}

// handleHealth confirms the webhook is up
func (s *webhookServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Dialogflow webhook running."))
}

func newMux(s *webhookServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", s.handleWebhook)
	mux.HandleFunc("GET /{$}", s.handleHealth)
	return mux
}
