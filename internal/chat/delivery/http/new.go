package http

import (
	"context"

	"github.com/gin-gonic/gin"

	pkgLog "weather-agent/pkg/log"
)

// UseCase is the chat entry point the handler drives.
// *orchestrator.Orchestrator satisfies it.
type UseCase interface {
	Chat(ctx context.Context, sessionID, message string) (string, error)
}

// Handler is the interface for the chat delivery handler.
type Handler interface {
	Chat(c *gin.Context)
}

// New creates a new chat delivery handler.
func New(l pkgLog.Logger, uc UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
