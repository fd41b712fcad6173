// Package services – AskService
//
// This file implements AskService, the orchestrator for a single incoming
// question. The pipeline is linear with no branching back: validate → detect
// an article reference → resolve it (user-supplied text preferred over the
// store) → build the constrained prompt → call the model gateway.
//
// Failure policy: store failures never abort the pipeline — they degrade to
// the no-text-found prompt branch and are logged distinctly from a genuine
// miss. Gateway failures do abort it; no retries, no partial answers.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/reblaw/go-law-proxy/internal/domain"
)

// Detector extracts an optional article reference from a question.
type Detector interface {
	Detect(question string) *domain.ArticleReference
}

// Resolver looks a detected reference up against the article store.
type Resolver interface {
	Resolve(ctx context.Context, ref *domain.ArticleReference) (*domain.ResolvedArticle, error)
}

// PromptBuilder composes the system/user message pair.
type PromptBuilder interface {
	Build(question string, resolved *domain.ResolvedArticle) []domain.ConversationMessage
}

// Gateway forwards messages to the model provider.
type Gateway interface {
	Ask(ctx context.Context, messages []domain.ConversationMessage) (string, error)
}

// AskService runs the anti-hallucination question pipeline. Stateless across
// requests; safe for concurrent use.
type AskService struct {
	Detector Detector
	Store    Resolver
	Prompt   PromptBuilder
	Gateway  Gateway

	// MaxQuestionRunes caps accepted questions; 0 disables the cap.
	MaxQuestionRunes int
}

// Answer handles one raw question end to end and returns the provider's
// answer text.
func (s *AskService) Answer(ctx context.Context, question string) (string, error) {
	tr := otel.Tracer("services/AskService")
	ctx, span := tr.Start(ctx, "Answer")
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if s.MaxQuestionRunes > 0 && utf8.RuneCountInString(question) > s.MaxQuestionRunes {
		return "", ErrQuestionTooLong
	}

	resolved := s.resolve(ctx, question)
	if resolved != nil {
		span.SetAttributes(
			attribute.Bool("article.found", resolved.Found),
			attribute.String("article.source", resolved.Source),
		)
	}

	messages := s.Prompt.Build(question, resolved)
	return s.Gateway.Ask(ctx, messages)
}

// Forward sends caller-constructed messages to the provider unchanged. Used
// by collaborators that build their own prompt (the legacy messages payload).
func (s *AskService) Forward(ctx context.Context, messages []domain.ConversationMessage) (string, error) {
	tr := otel.Tracer("services/AskService")
	ctx, span := tr.Start(ctx, "Forward",
		trace.WithAttributes(attribute.Int("messages.count", len(messages))),
	)
	defer span.End()

	return s.Gateway.Ask(ctx, messages)
}

// resolve runs detection and lookup, returning nil when no reference was
// detected. User-provided text after a separator is trusted verbatim but
// tagged as unverified; store failures downgrade to "not found".
func (s *AskService) resolve(ctx context.Context, question string) *domain.ResolvedArticle {
	ref := s.Detector.Detect(question)
	if ref == nil {
		return nil
	}

	if ref.UserProvidedText != "" {
		return &domain.ResolvedArticle{
			Found:          true,
			LawDisplayName: ref.LawName,
			ArticleNumber:  ref.ArticleNumber,
			Text:           ref.UserProvidedText,
			Source:         domain.SourceUserProvided,
		}
	}

	resolved, err := s.Store.Resolve(ctx, ref)
	if err != nil {
		// Store trouble, not a miss. Degrade to the forbid-fabrication
		// branch rather than failing the question.
		log.Warn().Err(err).
			Str("law_name", ref.LawName).
			Int("article_number", ref.ArticleNumber).
			Msg("article lookup unavailable")
		return &domain.ResolvedArticle{
			Found:          false,
			LawDisplayName: ref.LawName,
			ArticleNumber:  ref.ArticleNumber,
		}
	}
	return resolved
}
