package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weather-agent/internal/agent/orchestrator"
	pkgLog "weather-agent/pkg/log"
	pkgResponse "weather-agent/pkg/response"
)

type handler struct {
	l  pkgLog.Logger
	uc UseCase
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
	Failure   string `json:"failure,omitempty"`
}

// Chat handles one natural-language chat turn
// @Summary Chat with the weather assistant
// @Description Send a message and receive a natural-language answer. Omit session_id to start a new conversation.
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body chatRequest true "Chat request"
// @Success 200 {object} response.Resp "Answer"
// @Failure 400 {object} response.Resp "Malformed request"
// @Failure 503 {object} response.Resp "Assistant temporarily unavailable"
// @Router /api/v1/chat [post]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "chat handler: failed to parse request: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		pkgResponse.Error(c, ErrEmptyMessage, nil)
		return
	}

	// A missing session id starts a fresh conversation; the generated id
	// is returned so the client can continue it.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	answer, err := h.uc.Chat(ctx, sessionID, req.Message)
	if err != nil {
		switch kind := orchestrator.KindOf(err); kind {
		case orchestrator.KindModelUnavailable:
			h.l.Errorf(ctx, "chat handler: model unavailable session=%s: %v", sessionID, err)
			pkgResponse.ServiceUnavailable(c, answer)
		case orchestrator.KindToolLoopExceeded:
			// The conversation stays usable; the fallback answer plus a
			// failure tag lets clients distinguish it from a real answer.
			h.l.Warnf(ctx, "chat handler: tool loop exceeded session=%s", sessionID)
			pkgResponse.OK(c, chatResponse{SessionID: sessionID, Answer: answer, Failure: string(kind)})
		default:
			h.l.Errorf(ctx, "chat handler: unexpected failure session=%s: %v", sessionID, err)
			pkgResponse.InternalError(c, err)
		}
		return
	}

	pkgResponse.OK(c, chatResponse{SessionID: sessionID, Answer: answer})
}
