// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/http/handlers"
	"courier/internal/http/middleware"
	"courier/internal/infra"
	"courier/internal/modules/chat"
	"courier/internal/modules/dialogue"
)

type RouterDeps struct {
	Dialogue *dialogue.Service
	Chats    *chat.Service

	// Verifier may be nil to run the API in demo mode (uid from header).
	Verifier infra.TokenVerifier
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	chatHandler := handlers.NewChatHandler(deps.Dialogue)
	sessionHandler := handlers.NewSessionHandler(deps.Chats)

	api := r.Group("/api", middleware.Auth(deps.Verifier))
	api.POST("/chat/message", chatHandler.PostMessage)
	api.POST("/chat/sessions/:id/activate", sessionHandler.Activate)
	api.GET("/chat/history", sessionHandler.History)

	return r
}
