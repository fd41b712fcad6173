// Package services – ArticleStore
//
// This file implements the ArticleStore, the read-only lookup of statutory
// article text. It owns alias resolution from human-readable law names to
// canonical codes and the exact (code, number) text lookup. No other
// component queries the store directly.
//
// Resolution order for a law name, first match wins:
//  1. the normalized name is itself a canonical code present in the store,
//  2. the law_aliases table,
//  3. the injected fallback alias map.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/reblaw/go-law-proxy/internal/detect"
	"github.com/reblaw/go-law-proxy/internal/domain"
	"github.com/reblaw/go-law-proxy/internal/repo"
)

// ArticleRepo defines the repository contract required by ArticleStore.
type ArticleRepo interface {
	// GetArticleText returns the stored text for (code, number) or
	// repo.ErrNotFound.
	GetArticleText(ctx context.Context, db *gorm.DB, code string, number int) (string, error)
	// LawCodeExists reports whether any article exists under code.
	LawCodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error)
	// FindAlias returns the law code mapped to alias or repo.ErrNotFound.
	FindAlias(ctx context.Context, db *gorm.DB, alias string) (string, error)
}

// DefaultFallbackAliases is the seed alias set used when the alias table has
// no match. Injected at construction so tests can substitute their own.
var DefaultFallbackAliases = map[string]string{
	"قانون مجازات اسلامی": "حقوق_جزا",
	"ق.م.ا":               "حقوق_جزا",
	"مجازات اسلامی":       "حقوق_جزا",
	"Islamic Penal Code":  "حقوق_جزا",
	"Iran Penal Code":     "حقوق_جزا",
}

// ArticleStore resolves law names to canonical codes and fetches article
// text. Read-only; safe for unlimited concurrent callers.
type ArticleStore struct {
	// DB is the GORM handle used for lookups.
	DB *gorm.DB
	// Repo is the article repository used by this store.
	Repo ArticleRepo
	// FallbackAliases maps normalized law names to codes when neither a
	// direct code nor an alias row matches.
	FallbackAliases map[string]string
}

// NewArticleStore constructs an ArticleStore with the default fallback alias
// map.
func NewArticleStore(db *gorm.DB, r ArticleRepo) *ArticleStore {
	return &ArticleStore{
		DB:              db,
		Repo:            r,
		FallbackAliases: DefaultFallbackAliases,
	}
}

// ResolveLawCode maps a raw law name to a canonical code. Resolving an
// already-canonical code returns that same code. Returns ErrLawUnknown when
// nothing matches and ErrStoreUnavailable on store failure.
func (s *ArticleStore) ResolveLawCode(ctx context.Context, lawNameRaw string) (string, error) {
	tr := otel.Tracer("services/ArticleStore")
	ctx, span := tr.Start(ctx, "ResolveLawCode",
		trace.WithAttributes(attribute.String("law.name", lawNameRaw)),
	)
	defer span.End()

	name := detect.NormalizeLawName(lawNameRaw)
	if name == "" {
		return "", ErrLawUnknown
	}

	// (a) already a canonical code
	exists, err := s.Repo.LawCodeExists(ctx, s.DB, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if exists {
		return name, nil
	}

	// (b) alias table
	code, err := s.Repo.FindAlias(ctx, s.DB, name)
	switch {
	case err == nil:
		return code, nil
	case !errors.Is(err, repo.ErrNotFound):
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// (c) static fallback map
	if code, ok := s.FallbackAliases[name]; ok {
		return code, nil
	}
	return "", ErrLawUnknown
}

// resolveLawCodeRelaxed resolves name, falling back to shrinking word
// prefixes when the exact name is unknown. Store failures abort immediately;
// only ErrLawUnknown moves on to the next candidate.
func (s *ArticleStore) resolveLawCodeRelaxed(ctx context.Context, name string) (string, error) {
	for _, candidate := range lawNameCandidates(name) {
		code, err := s.ResolveLawCode(ctx, candidate)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, ErrLawUnknown) {
			return "", err
		}
	}
	return "", ErrLawUnknown
}

// lawNameCandidates lists resolution candidates for a detected law name,
// longest first: each word prefix of the name, plus the same prefix with the
// «قانون» keyword restored (the detection pattern strips it from the capture).
func lawNameCandidates(name string) []string {
	words := strings.Fields(detect.NormalizeLawName(name))
	out := make([]string, 0, 2*len(words))
	seen := make(map[string]struct{}, 2*len(words))
	add := func(c string) {
		if _, dup := seen[c]; !dup {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	for k := len(words); k >= 1; k-- {
		prefix := strings.Join(words[:k], " ")
		add(prefix)
		if !strings.HasPrefix(prefix, "قانون") {
			add("قانون " + prefix)
		}
	}
	return out
}

// ArticleText returns the authoritative text for (lawCode, number). A missing
// row is ErrArticleNotFound; only underlying store failure yields
// ErrStoreUnavailable.
func (s *ArticleStore) ArticleText(ctx context.Context, lawCode string, number int) (string, error) {
	tr := otel.Tracer("services/ArticleStore")
	ctx, span := tr.Start(ctx, "ArticleText",
		trace.WithAttributes(
			attribute.String("law.code", lawCode),
			attribute.Int("article.number", number),
		),
	)
	defer span.End()

	text, err := s.Repo.GetArticleText(ctx, s.DB, lawCode, number)
	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, repo.ErrNotFound):
		return "", ErrArticleNotFound
	default:
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

// Resolve looks a detected reference up and shapes the outcome for prompt
// building. Unknown laws and missing rows come back as Found == false with no
// error; only store failure is returned as an error so the caller can log it
// distinctly before degrading to the same not-found branch.
//
// Detected law names can carry trailing question words ("مدنی یعنی چه"): the
// detection pattern only stops the capture at a separator or line end, and it
// consumes the «قانون» keyword itself. Resolution therefore retries shrinking
// word prefixes of the name, each with and without the «قانون» prefix, before
// giving up.
func (s *ArticleStore) Resolve(ctx context.Context, ref *domain.ArticleReference) (*domain.ResolvedArticle, error) {
	notFound := &domain.ResolvedArticle{
		Found:          false,
		LawDisplayName: ref.LawName,
		ArticleNumber:  ref.ArticleNumber,
	}

	code, err := s.resolveLawCodeRelaxed(ctx, ref.LawName)
	if errors.Is(err, ErrLawUnknown) {
		return notFound, nil
	}
	if err != nil {
		return nil, err
	}

	text, err := s.ArticleText(ctx, code, ref.ArticleNumber)
	if errors.Is(err, ErrArticleNotFound) {
		notFound.LawCode = code
		return notFound, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.ResolvedArticle{
		Found:          true,
		LawCode:        code,
		LawDisplayName: ref.LawName,
		ArticleNumber:  ref.ArticleNumber,
		Text:           text,
		Source:         domain.SourceOfficial,
	}, nil
}
