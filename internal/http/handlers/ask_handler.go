// Ask HTTP handlers.
//
// POST /ask and POST /api/ask accept either the structured payload
// ({messages, meta}) or the legacy payload ({question}). Structured messages
// are forwarded to the provider unchanged; a bare question runs through the
// full detection/resolution/prompt pipeline. Both shapes answer with the
// same {success, answer|message} envelope.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reblaw/go-law-proxy/internal/domain"
	"github.com/reblaw/go-law-proxy/internal/http/middleware"
	"github.com/reblaw/go-law-proxy/internal/services"
)

// AskService defines the question-answering operations consumed by HTTP
// handlers.
type AskService interface {
	// Answer runs the full pipeline on a raw question.
	Answer(ctx context.Context, question string) (string, error)
	// Forward sends pre-built messages to the provider unchanged.
	Forward(ctx context.Context, messages []domain.ConversationMessage) (string, error)
}

// Handlers bundles the services behind the public endpoints.
type Handlers struct {
	askSvc     AskService
	articleSvc ArticleService
}

// New constructs the handler set from its service dependencies.
func New(ask AskService, articles ArticleService) *Handlers {
	return &Handlers{askSvc: ask, articleSvc: articles}
}

// AskRequest is the request body for POST /ask and POST /api/ask. Messages
// takes precedence over Question when both are present. Meta is accepted for
// forward compatibility and currently ignored.
type AskRequest struct {
	Messages []domain.ConversationMessage `json:"messages"`
	Question string                       `json:"question"`
	Meta     map[string]any               `json:"meta"`
}

// AskResponse is the response body for the ask endpoints. Answer is set on
// success, Message on failure.
type AskResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer,omitempty"`
	Message string `json:"message,omitempty"`
}

// Ask handles POST /ask and POST /api/ask.
func (h *Handlers) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AskResponse{Success: false, Message: MsgInvalidPayload})
		return
	}

	var (
		answer string
		err    error
	)
	switch {
	case len(req.Messages) > 0:
		if !validMessages(req.Messages) {
			c.JSON(http.StatusBadRequest, AskResponse{Success: false, Message: MsgInvalidPayload})
			return
		}
		answer, err = h.askSvc.Forward(ctx, req.Messages)
	case strings.TrimSpace(req.Question) != "":
		answer, err = h.askSvc.Answer(ctx, req.Question)
	default:
		c.JSON(http.StatusBadRequest, AskResponse{Success: false, Message: MsgInvalidPayload})
		return
	}

	if err != nil {
		h.askError(c, err)
		return
	}

	ok(c, http.StatusOK, AskResponse{Success: true, Answer: answer})
}

// askError maps pipeline errors onto the endpoint contract: validation
// failures are the client's problem, everything else is a generic proxy
// error with the detail kept server-side.
func (h *Handlers) askError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyQuestion), errors.Is(err, services.ErrQuestionTooLong):
		c.JSON(http.StatusBadRequest, AskResponse{Success: false, Message: MsgInvalidPayload})
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("ask pipeline failed")
		c.JSON(http.StatusInternalServerError, AskResponse{Success: false, Message: MsgProxyError})
	}
}

// validMessages checks the minimal shape of caller-supplied messages: every
// entry needs a known role and non-empty content.
func validMessages(msgs []domain.ConversationMessage) bool {
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleSystem, domain.RoleUser, domain.RoleAssistant:
		default:
			return false
		}
		if strings.TrimSpace(m.Content) == "" {
			return false
		}
	}
	return true
}
