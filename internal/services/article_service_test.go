package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/reblaw/go-law-proxy/internal/domain"
	"github.com/reblaw/go-law-proxy/internal/repo"
)

// ----- Fake repo -----

type fakeArticleRepo struct {
	// articles[(code, number)] = text
	articles map[string]map[int]string
	// aliases[alias] = code
	aliases map[string]string

	// injected failures
	textErr   error
	existsErr error
	aliasErr  error

	// capture args
	lastCode   string
	lastNumber int
	lastAlias  string
}

func (r *fakeArticleRepo) GetArticleText(ctx context.Context, db *gorm.DB, code string, number int) (string, error) {
	r.lastCode, r.lastNumber = code, number
	if r.textErr != nil {
		return "", r.textErr
	}
	if txt, ok := r.articles[code][number]; ok {
		return txt, nil
	}
	return "", repo.ErrNotFound
}

func (r *fakeArticleRepo) LawCodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.articles[code]
	return ok, nil
}

func (r *fakeArticleRepo) FindAlias(ctx context.Context, db *gorm.DB, alias string) (string, error) {
	r.lastAlias = alias
	if r.aliasErr != nil {
		return "", r.aliasErr
	}
	if code, ok := r.aliases[alias]; ok {
		return code, nil
	}
	return "", repo.ErrNotFound
}

func newFakeRepo() *fakeArticleRepo {
	return &fakeArticleRepo{
		articles: map[string]map[int]string{
			"حقوق_مدنی": {10: "قراردادهای خصوصی نافذ است."},
			"حقوق_جزا":  {27: "مدت حبس از روز شروع محاسبه می‌شود."},
		},
		aliases: map[string]string{
			"قانون مدنی": "حقوق_مدنی",
		},
	}
}

func newStore(r ArticleRepo) *ArticleStore {
	return NewArticleStore(nil, r)
}

// ----- ResolveLawCode -----

func TestResolveLawCode_DirectCode(t *testing.T) {
	s := newStore(newFakeRepo())
	code, err := s.ResolveLawCode(context.Background(), "حقوق_مدنی")
	if err != nil {
		t.Fatalf("ResolveLawCode: %v", err)
	}
	if code != "حقوق_مدنی" {
		t.Fatalf("code = %q", code)
	}
}

func TestResolveLawCode_AliasTable(t *testing.T) {
	s := newStore(newFakeRepo())
	code, err := s.ResolveLawCode(context.Background(), "قانون مدنی")
	if err != nil {
		t.Fatalf("ResolveLawCode: %v", err)
	}
	if code != "حقوق_مدنی" {
		t.Fatalf("code = %q", code)
	}
}

func TestResolveLawCode_Fallback(t *testing.T) {
	s := newStore(newFakeRepo())
	code, err := s.ResolveLawCode(context.Background(), "قانون مجازات اسلامی")
	if err != nil {
		t.Fatalf("ResolveLawCode: %v", err)
	}
	if code != "حقوق_جزا" {
		t.Fatalf("code = %q", code)
	}
}

func TestResolveLawCode_Idempotent(t *testing.T) {
	// Resolving an already-canonical code returns it unchanged.
	s := newStore(newFakeRepo())
	code1, err := s.ResolveLawCode(context.Background(), "قانون مدنی")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	code2, err := s.ResolveLawCode(context.Background(), code1)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if code2 != code1 {
		t.Fatalf("resolve not idempotent: %q vs %q", code1, code2)
	}
}

func TestResolveLawCode_NormalizesInput(t *testing.T) {
	s := newStore(newFakeRepo())
	// ZWNJ inside the compound plus trailing colon.
	code, err := s.ResolveLawCode(context.Background(), " قانون‌مدنی: ")
	if err != nil {
		t.Fatalf("ResolveLawCode: %v", err)
	}
	if code != "حقوق_مدنی" {
		t.Fatalf("code = %q", code)
	}
}

func TestResolveLawCode_Unknown(t *testing.T) {
	s := newStore(newFakeRepo())
	_, err := s.ResolveLawCode(context.Background(), "قانون ناشناخته")
	if !errors.Is(err, ErrLawUnknown) {
		t.Fatalf("err = %v, want ErrLawUnknown", err)
	}
}

func TestResolveLawCode_EmptyName(t *testing.T) {
	s := newStore(newFakeRepo())
	_, err := s.ResolveLawCode(context.Background(), "  :  ")
	if !errors.Is(err, ErrLawUnknown) {
		t.Fatalf("err = %v, want ErrLawUnknown", err)
	}
}

func TestResolveLawCode_StoreFailure(t *testing.T) {
	r := newFakeRepo()
	r.existsErr = errors.New("disk I/O error")
	s := newStore(r)
	_, err := s.ResolveLawCode(context.Background(), "قانون مدنی")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestResolveLawCode_AliasFailure(t *testing.T) {
	r := newFakeRepo()
	r.aliasErr = errors.New("database is locked")
	s := newStore(r)
	_, err := s.ResolveLawCode(context.Background(), "قانون مدنی")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

// ----- ArticleText -----

func TestArticleText_Hit(t *testing.T) {
	s := newStore(newFakeRepo())
	text, err := s.ArticleText(context.Background(), "حقوق_مدنی", 10)
	if err != nil {
		t.Fatalf("ArticleText: %v", err)
	}
	if text != "قراردادهای خصوصی نافذ است." {
		t.Fatalf("text = %q", text)
	}
}

func TestArticleText_Miss(t *testing.T) {
	s := newStore(newFakeRepo())
	_, err := s.ArticleText(context.Background(), "حقوق_مدنی", 9999)
	if !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("err = %v, want ErrArticleNotFound", err)
	}
}

func TestArticleText_StoreFailure(t *testing.T) {
	r := newFakeRepo()
	r.textErr = errors.New("file is not a database")
	s := newStore(r)
	_, err := s.ArticleText(context.Background(), "حقوق_مدنی", 10)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

// ----- Resolve -----

func TestResolve_Found(t *testing.T) {
	s := newStore(newFakeRepo())
	res, err := s.Resolve(context.Background(), &domain.ArticleReference{
		ArticleNumber: 10,
		LawName:       "قانون مدنی",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Found {
		t.Fatal("expected Found")
	}
	if res.LawCode != "حقوق_مدنی" || res.Source != domain.SourceOfficial {
		t.Fatalf("res = %+v", res)
	}
	if res.Text == "" {
		t.Fatal("expected article text")
	}
}

func TestResolve_UnknownLaw(t *testing.T) {
	s := newStore(newFakeRepo())
	res, err := s.Resolve(context.Background(), &domain.ArticleReference{
		ArticleNumber: 1,
		LawName:       "قانون ناشناخته",
	})
	if err != nil {
		t.Fatalf("unknown law is an outcome, not an error: %v", err)
	}
	if res.Found {
		t.Fatal("expected Found == false")
	}
	if res.Text != "" {
		t.Fatal("not-found resolution must carry no text")
	}
}

func TestResolve_ArticleMiss(t *testing.T) {
	s := newStore(newFakeRepo())
	res, err := s.Resolve(context.Background(), &domain.ArticleReference{
		ArticleNumber: 9999,
		LawName:       "قانون مدنی",
	})
	if err != nil {
		t.Fatalf("a miss is an outcome, not an error: %v", err)
	}
	if res.Found {
		t.Fatal("expected Found == false")
	}
	if res.LawCode != "حقوق_مدنی" {
		t.Fatalf("LawCode = %q, want the resolved code kept for logging", res.LawCode)
	}
}

func TestResolve_TrailingQuestionWords(t *testing.T) {
	// A detected name can carry the question tail ("مدنی یعنی چه"); shorter
	// word prefixes must still reach the alias table.
	s := newStore(newFakeRepo())
	res, err := s.Resolve(context.Background(), &domain.ArticleReference{
		ArticleNumber: 10,
		LawName:       "مدنی یعنی چه",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Found {
		t.Fatal("expected Found")
	}
	if res.LawCode != "حقوق_مدنی" {
		t.Fatalf("LawCode = %q", res.LawCode)
	}
}

func TestResolve_RestoresLawKeyword(t *testing.T) {
	// The detection pattern consumes «قانون»; prefix candidates are retried
	// with it restored so store-only names still resolve.
	r := &fakeArticleRepo{
		articles: map[string]map[int]string{
			"قانون تجارت": {1: "تاجر کسی است که شغل معمولی خود را معاملات تجارتی قرار بدهد."},
		},
	}
	res, err := newStore(r).Resolve(context.Background(), &domain.ArticleReference{
		ArticleNumber: 1,
		LawName:       "تجارت یعنی چه",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Found || res.LawCode != "قانون تجارت" {
		t.Fatalf("res = %+v", res)
	}
}

func TestResolveLawCode_ExactStaysStrict(t *testing.T) {
	// The exact resolver used by the article endpoint does not retry
	// prefixes; a name with a question tail stays unknown.
	s := newStore(newFakeRepo())
	_, err := s.ResolveLawCode(context.Background(), "قانون مدنی یعنی چه")
	if !errors.Is(err, ErrLawUnknown) {
		t.Fatalf("err = %v, want ErrLawUnknown", err)
	}
}

func TestResolve_StoreFailurePropagates(t *testing.T) {
	r := newFakeRepo()
	r.existsErr = errors.New("disk I/O error")
	s := newStore(r)
	_, err := s.Resolve(context.Background(), &domain.ArticleReference{
		ArticleNumber: 10,
		LawName:       "قانون مدنی",
	})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestStore_CustomFallbackAliases(t *testing.T) {
	s := newStore(newFakeRepo())
	s.FallbackAliases = map[string]string{"آزمایشی": "حقوق_مدنی"}
	code, err := s.ResolveLawCode(context.Background(), "آزمایشی")
	if err != nil {
		t.Fatalf("ResolveLawCode: %v", err)
	}
	if code != "حقوق_مدنی" {
		t.Fatalf("code = %q", code)
	}
}
