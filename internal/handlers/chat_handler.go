package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/drishyamitra/server/internal/models"
	"github.com/drishyamitra/server/internal/services"
)

// ChatHandler handles the conversational endpoint
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat runs a natural-language query against the library
// @Summary Chat with the photo assistant
// @Description Find, delete, or share photos with a free-text query.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Query text"
// @Success 200 {object} models.ChatResponse "Assistant reply and affected photos"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		respondError(w, http.StatusBadRequest, "Query is required.")
		return
	}

	resp, err := h.chatService.Chat(r.Context(), req.Query)
	if err != nil {
		log.Printf("Chat error: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to process query.")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
