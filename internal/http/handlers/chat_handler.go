// README: Chat turn handler; the single conversational entry point.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"courier/internal/http/middleware"
	"courier/internal/modules/dialogue"
)

type ChatHandler struct {
	dialogue *dialogue.Service
}

func NewChatHandler(svc *dialogue.Service) *ChatHandler {
	return &ChatHandler{dialogue: svc}
}

type chatMessageReq struct {
	UserMessage    string `json:"userMessage"`
	MessageType    string `json:"messageType"`
	SessionID      string `json:"sessionId"`
	OrderID        string `json:"orderId"`
	UserLocation   string `json:"userLocation"`
	SuggestionType string `json:"suggestionType"`
}

// PostMessage handles POST /api/chat/message.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req chatMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.UserMessage = strings.TrimSpace(req.UserMessage)
	if req.UserMessage == "" {
		writeError(c, http.StatusBadRequest, "userMessage is required")
		return
	}
	if req.MessageType == "" {
		req.MessageType = dialogue.MessageTypeText
	}

	resp, err := h.dialogue.HandleTurn(c.Request.Context(), dialogue.TurnRequest{
		UserID:         middleware.CallerUID(c),
		Message:        req.UserMessage,
		MessageType:    req.MessageType,
		SessionID:      req.SessionID,
		OrderID:        req.OrderID,
		UserLocation:   req.UserLocation,
		SuggestionType: dialogue.SuggestionType(req.SuggestionType),
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(c, http.StatusOK, resp)
}
