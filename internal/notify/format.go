package notify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"creatorlink/internal/models"
)

const maxDescriptionLen = 280

// FormatNewJob renders a job posting for MarkdownV2.
func FormatNewJob(job *models.Job) string {
	var sb strings.Builder

	sb.WriteString("🆕 *New job posted*\n\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(job.Title)))
	sb.WriteString(fmt.Sprintf("🏢 %s\n", EscapeMarkdown(job.BusinessName)))
	sb.WriteString(fmt.Sprintf("📍 %s, %s\n", EscapeMarkdown(job.City), EscapeMarkdown(job.Country)))
	sb.WriteString(fmt.Sprintf("🏷 %s\n", EscapeMarkdown(job.Industry)))

	if job.PaymentRange != nil {
		sb.WriteString(fmt.Sprintf("💰 %s\n", EscapeMarkdown(*job.PaymentRange)))
	}

	if job.JobDate != nil {
		when := job.JobDate.String()
		if job.JobTime != nil {
			when += " " + *job.JobTime
		}
		sb.WriteString(fmt.Sprintf("📅 %s\n", EscapeMarkdown(when)))
	}

	if job.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(EscapeMarkdown(TruncateString(job.Description, maxDescriptionLen)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatNewApplication renders an application for MarkdownV2.
func FormatNewApplication(job *models.Job, creator *models.CreatorProfile) string {
	var sb strings.Builder

	sb.WriteString("📨 *New application*\n\n")
	sb.WriteString(fmt.Sprintf("*@%s* applied to *%s*\n",
		EscapeMarkdown(creator.Username),
		EscapeMarkdown(job.Title),
	))
	sb.WriteString(fmt.Sprintf("🏢 %s\n", EscapeMarkdown(job.BusinessName)))
	sb.WriteString(fmt.Sprintf("📍 Creator based in %s, %s\n",
		EscapeMarkdown(creator.City),
		EscapeMarkdown(creator.Country),
	))

	return sb.String()
}

func EscapeMarkdown(text string) string {
	// \ _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

// TruncateString cuts s to at most maxLen runes, ending with "...".
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
