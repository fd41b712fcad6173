// Package prompt constructs the model-provider message pair for a legal
// question. The output is always exactly two messages (system, user); the
// system message carries the assistant's standing instructions and, when an
// article reference was detected but its official text could not be fetched,
// an explicit directive forbidding the model from quoting or inventing
// statutory text.
package prompt

import (
	"fmt"

	"github.com/reblaw/go-law-proxy/internal/domain"
)

// systemPrompt establishes the assistant's domain, the language-mirroring
// rule, the grounding rules for supplied article text, and the closing
// disclaimer requirement.
const systemPrompt = `شما دستیار حقوقی وب‌سایت RebLaw هستید.
- حوزه اصلی: حقوق ایران (قانون مدنی، قانون مجازات اسلامی، آیین دادرسی‌ها و سایر قوانین مرتبط).
- همیشه به همان زبانی پاسخ بده که کاربر نوشته است (فارسی، کردی یا انگلیسی).
- اگر «متن رسمی ماده» یا «متن ماده ارائه‌شده توسط کاربر» در ورودی وجود دارد، تحلیل را دقیقاً مبتنی بر همان متن انجام بده.
- از حدس‌زدن متن مواد یا شماره مواد خودداری کن؛ اگر متن رسمی ارائه نشده یا مطمئن نیستی، شفاف بگو.
- در پایان یادآوری کن: پاسخ جایگزین مشاوره حضوری و وکالت حرفه‌ای نیست.`

// notFoundDirective is appended to the system message when a reference was
// detected but no text is available. It forbids quoting or fabricating the
// article and tells the model what to say instead.
const notFoundDirective = `

⚠️ هشدار سیستم: متن رسمی ماده از پایگاه داده پیدا نشد. شما حق ندارید متن ماده را نقل‌قول کنید یا از خودتان متن بسازید.
فقط اعلام کنید: «متن رسمی این ماده در دسترس نیست/یافت نشد» و سپس تحلیل کلی ارائه دهید یا از کاربر بخواهید متن رسمی را ارسال کند.`

const (
	officialBlockFmt = "📜 متن رسمی %s – ماده %d:\n%s\n\n"
	userBlockFmt     = "📌 متن ماده (ارائه‌شده توسط کاربر) — %s ماده %d:\n%s\n\n" +
		"⚠️ یادداشت سیستم: این متن توسط کاربر ارائه شده و هنوز با نسخه رسمی تطبیق داده نشده است.\n\n"
	questionLabel = "سؤال کاربر:\n"
)

// Builder assembles conversation messages. It is stateless and safe for
// concurrent use.
type Builder struct{}

// Build returns the [system, user] pair for question and the resolution
// outcome. resolved may be nil (no reference detected); resolved.Found ==
// false means a reference was detected but no text is available, which
// triggers the anti-fabrication directive in the system message.
func (Builder) Build(question string, resolved *domain.ResolvedArticle) []domain.ConversationMessage {
	system := systemPrompt
	user := ""

	switch {
	case resolved == nil:
		// Plain question, no article block.
	case !resolved.Found:
		system += notFoundDirective
	case resolved.Source == domain.SourceUserProvided:
		user += fmt.Sprintf(userBlockFmt, resolved.LawDisplayName, resolved.ArticleNumber, resolved.Text)
	default:
		user += fmt.Sprintf(officialBlockFmt, resolved.LawDisplayName, resolved.ArticleNumber, resolved.Text)
	}

	user += questionLabel + question

	return []domain.ConversationMessage{
		{Role: domain.RoleSystem, Content: system},
		{Role: domain.RoleUser, Content: user},
	}
}
