package domain

// Message roles understood by the model provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provenance tags for resolved article text.
const (
	// SourceOfficial marks text fetched from the statutory store.
	SourceOfficial = "official"
	// SourceUserProvided marks text the user typed after a separator. It is
	// used for analysis but must never be represented as confirmed official
	// text.
	SourceUserProvided = "user-provided"
)

// ArticleReference is a law-article reference extracted from a free-text
// question. It is created by the detector for a single request and discarded
// afterwards.
type ArticleReference struct {
	// ArticleNumber is the referenced article, always > 0.
	ArticleNumber int
	// LawNameRaw is the law-name segment exactly as the user typed it.
	LawNameRaw string
	// LawName is the normalized law name (canonical where recognizable).
	LawName string
	// UserProvidedText holds text the user supplied after a colon separator,
	// or "" when none was given.
	UserProvidedText string
}

// ResolvedArticle is the outcome of looking an ArticleReference up against
// the article store (or of accepting user-provided text verbatim).
//
// Invariant: when Found is false, Text is empty and no downstream component
// may treat the value as authoritative.
type ResolvedArticle struct {
	Found          bool
	LawCode        string
	LawDisplayName string
	ArticleNumber  int
	Text           string
	Source         string
}

// ConversationMessage is one role/content pair of the model-provider request.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnswerResult is the terminal outcome of a full question request as
// serialized to the caller.
type AnswerResult struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer,omitempty"`
	Message string `json:"message,omitempty"`
}
