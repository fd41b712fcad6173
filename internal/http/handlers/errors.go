// Package handlers defines HTTP-layer error codes used by fallback routes
// and the standard error envelope. The two public endpoints carry their own
// wire contracts (success flags instead of status-driven envelopes); these
// codes cover everything else: unmatched routes, method mismatches, and
// panics. Rate-limit rejections are written by the middleware with its own
// code.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"
)

// User-facing messages for the two public endpoints. The article endpoint
// speaks Persian like the data it serves; the ask endpoint keeps the
// provider-neutral English strings the presentation layer already matches
// on.
const (
	MsgInvalidPayload = "Invalid payload"
	MsgProxyError     = "Proxy error"

	MsgArticleBadParams     = "پارامترها نامعتبر است."
	MsgArticleStoreMissing  = "DB قوانین در دسترس نیست."
	MsgArticleLawUnknown    = "نام قانون ناشناخته است."
	MsgArticleTextNotFound  = "متن ماده یافت نشد."
	MsgArticleInternalError = "خطای داخلی Law API"
)
