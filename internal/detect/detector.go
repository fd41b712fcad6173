// Package detect recognizes statutory article references embedded in
// free-text legal questions, e.g. "ماده ۲۷ قانون مجازات اسلامی: …".
//
// Detection is a pure function of the input text: it extracts the article
// number (Persian, Arabic-Indic or ASCII digits), the law-name segment, and
// any text the user supplied after a colon separator as their own copy of the
// article. It never returns an error; unrecognized input yields nil.
package detect

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/reblaw/go-law-proxy/internal/domain"
)

var (
	// refRE matches "ماده <number> [از] (قانون|ق.) <law name>" terminated by a
	// colon variant, a semicolon, a newline, or end of string. The law-name
	// capture is non-greedy so trailing separators stay out of it.
	refRE = regexp.MustCompile(`ماده\s*([0-9۰-۹٠-٩]+)\s*(?:از\s*)?(?:قانون|ق\.)\s*([^\n\r]+?)(?:\s*[:：؛\n\r]|$)`)

	// userTextRE captures everything after the first colon-like separator as
	// the user's own claimed article text.
	userTextRE = regexp.MustCompile(`(?s)[:：]\s*(.+)$`)

	// trailingPunctRE strips separators, dashes and question marks left at
	// the end of a law-name segment.
	trailingPunctRE = regexp.MustCompile(`[\s:：؛،.?؟\-–—]+$`)

	whitespaceRE = regexp.MustCompile(`\s+`)
)

// DefaultAliases maps common short forms to full law names before the store
// resolves them to canonical codes. Injected into Detector so tests can
// substitute their own set.
var DefaultAliases = map[string]string{
	"مدنی":          "قانون مدنی",
	"مجازات اسلامی": "قانون مجازات اسلامی",
	"ق.م.ا":         "قانون مجازات اسلامی",
	"ق.م":           "قانون مدنی",
}

// Detector extracts article references from questions. The zero value uses no
// aliases; New returns one preloaded with DefaultAliases.
type Detector struct {
	// Aliases maps normalized short names to full law names.
	Aliases map[string]string
}

// New returns a Detector with the default short-name alias map.
func New() *Detector {
	return &Detector{Aliases: DefaultAliases}
}

// Detect parses question for an article reference. It returns nil when no
// reference is recognized, when the article number is not a positive integer,
// or when the law-name segment is empty after normalization.
func (d *Detector) Detect(question string) *domain.ArticleReference {
	q := strings.TrimSpace(question)
	if q == "" {
		return nil
	}

	m := refRE.FindStringSubmatch(q)
	if m == nil {
		return nil
	}

	n, err := strconv.Atoi(NormalizeDigits(m[1]))
	if err != nil || n <= 0 {
		return nil
	}

	raw := strings.TrimSpace(m[2])
	name := NormalizeLawName(raw)
	if name == "" {
		return nil
	}
	name = d.expandAlias(name)

	userText := ""
	if um := userTextRE.FindStringSubmatch(q); um != nil {
		userText = strings.TrimSpace(um[1])
	}

	return &domain.ArticleReference{
		ArticleNumber:    n,
		LawNameRaw:       raw,
		LawName:          name,
		UserProvidedText: userText,
	}
}

// expandAlias maps name through the alias table. Without a separator after
// the law name the capture runs to the end of the line, so trailing question
// words ride along ("مدنی یعنی چه"); shorter word prefixes are tried until
// one matches. An unmatched name passes through unchanged.
func (d *Detector) expandAlias(name string) string {
	if full, ok := d.Aliases[name]; ok {
		return full
	}
	words := strings.Fields(name)
	for k := len(words) - 1; k >= 1; k-- {
		if full, ok := d.Aliases[strings.Join(words[:k], " ")]; ok {
			return full
		}
	}
	return name
}

// NormalizeDigits rewrites Persian (U+06F0–U+06F9) and Arabic-Indic
// (U+0660–U+0669) digits to their ASCII equivalents. Other runes pass
// through unchanged.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		default:
			return r
		}
	}, s)
}

// NormalizeLawName canonicalizes a law-name segment for comparison: NFC
// normalization, zero-width (non-)joiners replaced with plain spaces,
// trailing punctuation stripped, internal whitespace collapsed.
func NormalizeLawName(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\u200c", " ") // ZWNJ, common inside Persian compounds
	s = strings.ReplaceAll(s, "\u200d", " ") // ZWJ
	s = strings.TrimSpace(s)
	s = trailingPunctRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
