package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/helprly/job-assistant/pkg/logging"
)

const apologyMessage = "I'm having trouble right now. Please try again in a moment."

// TurnRequest is the inbound message payload.
type TurnRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId,omitempty"`
}

// Handler exposes the dialogue service over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the chat HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("chat: service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Message handles POST /chat/message. Processing failures never leak a bare
// stack to the client; they become the apology envelope with the error text.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic while processing chat turn", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, &Response{
				Message: apologyMessage,
				Error:   fmt.Sprintf("%v", rec),
			})
		}
	}()

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode chat request", "error", err)
		writeJSON(w, http.StatusInternalServerError, &Response{
			Message: apologyMessage,
			Error:   err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.ConversationID) == "" {
		writeJSON(w, http.StatusBadRequest, &Response{
			Message: "Please include a message and a conversation id.",
			Error:   "message and conversationId are required",
		})
		return
	}

	resp := h.service.HandleTurn(r.Context(), req.Message, req.ConversationID, req.UserID)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already out; nothing left to do but note it.
		logging.Default().Error("failed to encode chat response", "error", err)
	}
}
