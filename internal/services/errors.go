// Package services defines the business logic for article resolution and
// question answering. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; the
// handler layer translates them into user-facing messages and HTTP codes.
package services

import "errors"

var (
	// ErrEmptyQuestion is returned when a question is empty after trimming.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrQuestionTooLong is returned when a question exceeds the configured
	// maximum length.
	ErrQuestionTooLong = errors.New("question too long")

	// ErrLawUnknown indicates that the law name resolved to no canonical
	// code: not a code, not in the alias table, not in the fallback map.
	ErrLawUnknown = errors.New("law name not recognized")

	// ErrArticleNotFound indicates a legitimate miss: the law is known but
	// the (code, number) row does not exist. This is a valid outcome, not a
	// failure; it feeds the anti-fabrication prompt branch.
	ErrArticleNotFound = errors.New("article text not found")

	// ErrStoreUnavailable indicates an underlying store failure (missing or
	// corrupt file, connectivity). Distinct from a genuine miss; surfaced as
	// "article lookup unavailable" and never aborts the ask pipeline.
	ErrStoreUnavailable = errors.New("article store unavailable")
)
