// Article lookup HTTP handler.
//
// POST /api/article-by-name resolves a human-entered law name plus article
// number to stored statutory text. Application-level outcomes — unknown law,
// missing article, unavailable store — are all HTTP 200 with success:false
// and a human-readable Persian error; only unexpected internal failures
// produce HTTP 500. The presentation layer branches on the success flag, not
// the status code.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reblaw/go-law-proxy/internal/detect"
	"github.com/reblaw/go-law-proxy/internal/domain"
	"github.com/reblaw/go-law-proxy/internal/http/middleware"
	"github.com/reblaw/go-law-proxy/internal/services"
)

// ArticleService defines the article lookup operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type ArticleService interface {
	// ResolveLawCode maps a raw law name to a canonical code.
	ResolveLawCode(ctx context.Context, lawNameRaw string) (string, error)
	// ArticleText returns the stored text for (lawCode, number).
	ArticleText(ctx context.Context, lawCode string, number int) (string, error)
}

// ArticleByNameRequest is the request body for POST /api/article-by-name.
type ArticleByNameRequest struct {
	LawName       string `json:"law_name"`
	ArticleNumber int    `json:"article_number"`
}

// ArticleByNameResponse is the response body for POST /api/article-by-name.
// Error is only set when Success is false.
type ArticleByNameResponse struct {
	Success       bool   `json:"success"`
	LawName       string `json:"law_name,omitempty"`
	LawCode       string `json:"law_code,omitempty"`
	ArticleNumber int    `json:"article_number,omitempty"`
	Text          string `json:"text,omitempty"`
	Source        string `json:"source,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ArticleByName handles POST /api/article-by-name.
func (h *Handlers) ArticleByName(c *gin.Context) {
	ctx := c.Request.Context()

	var req ArticleByNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ok(c, http.StatusOK, ArticleByNameResponse{Success: false, Error: MsgArticleBadParams})
		return
	}

	lawName := detect.NormalizeLawName(req.LawName)
	if lawName == "" || req.ArticleNumber <= 0 {
		ok(c, http.StatusOK, ArticleByNameResponse{Success: false, Error: MsgArticleBadParams})
		return
	}

	code, err := h.articleSvc.ResolveLawCode(ctx, lawName)
	if err != nil {
		h.articleLookupError(c, err)
		return
	}

	text, err := h.articleSvc.ArticleText(ctx, code, req.ArticleNumber)
	if err != nil {
		h.articleLookupError(c, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		ok(c, http.StatusOK, ArticleByNameResponse{Success: false, Error: MsgArticleTextNotFound})
		return
	}

	ok(c, http.StatusOK, ArticleByNameResponse{
		Success:       true,
		LawName:       lawName,
		LawCode:       code,
		ArticleNumber: req.ArticleNumber,
		Text:          text,
		Source:        domain.SourceOfficial,
	})
}

// articleLookupError maps service errors onto the endpoint's success:false
// vocabulary, reserving HTTP 500 for the unexpected.
func (h *Handlers) articleLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLawUnknown):
		ok(c, http.StatusOK, ArticleByNameResponse{Success: false, Error: MsgArticleLawUnknown})
	case errors.Is(err, services.ErrArticleNotFound):
		ok(c, http.StatusOK, ArticleByNameResponse{Success: false, Error: MsgArticleTextNotFound})
	case errors.Is(err, services.ErrStoreUnavailable):
		middleware.LoggerFrom(c).Error().Err(err).Msg("article store unavailable")
		ok(c, http.StatusOK, ArticleByNameResponse{Success: false, Error: MsgArticleStoreMissing})
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("article lookup failed")
		c.JSON(http.StatusInternalServerError, ArticleByNameResponse{Success: false, Error: MsgArticleInternalError})
	}
}
