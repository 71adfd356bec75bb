// README: Chat session handlers: activate a session, list history.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/http/middleware"
	"courier/internal/modules/chat"
)

type SessionHandler struct {
	chats *chat.Service
}

func NewSessionHandler(svc *chat.Service) *SessionHandler {
	return &SessionHandler{chats: svc}
}

// Activate handles POST /api/chat/sessions/:id/activate. It points the
// caller at an existing session and returns its message history.
func (h *SessionHandler) Activate(c *gin.Context) {
	sessionID := c.Param("id")
	uid := middleware.CallerUID(c)

	if err := h.chats.Activate(c.Request.Context(), uid, sessionID); err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			writeError(c, http.StatusNotFound, "session not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	messages, err := h.chats.Messages(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"sessionId": sessionID, "messages": messages})
}

// History handles GET /api/chat/history.
func (h *SessionHandler) History(c *gin.Context) {
	uid := middleware.CallerUID(c)
	history, err := h.chats.History(c.Request.Context(), uid)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"history": history})
}
