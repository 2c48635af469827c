package chat

import (
	"strings"

	"github.com/viniciusgdoliveira/portfolio-api/internal/locale"
	"github.com/viniciusgdoliveira/portfolio-api/internal/personality"
)

// BuildSystemPrompt synthesizes the system message for one request. It is
// deterministic given (locale, persona): language directive first for
// emphasis, then persona base, traits, skills, projects, rules, and a
// closing language reminder.
func BuildSystemPrompt(loc string, sp personality.SystemPrompt) string {
	var b strings.Builder

	b.WriteString(locale.LanguageDirective(loc))
	b.WriteString("\n\n")
	b.WriteString(sp.Base)
	b.WriteString("\n\n")

	b.WriteString("Your personality traits:\n")
	for _, trait := range sp.Traits {
		b.WriteString("- ")
		b.WriteString(trait)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Your technical expertise:\n")
	b.WriteString("Primary: ")
	b.WriteString(strings.Join(sp.PrimarySkills, ", "))
	b.WriteString("\nSecondary: ")
	b.WriteString(strings.Join(sp.SecondarySkills, ", "))
	b.WriteString("\n\n")

	b.WriteString("Your key projects:\n")
	for _, p := range sp.Projects {
		b.WriteString("- ")
		b.WriteString(p.Title)
		b.WriteString(": ")
		b.WriteString(p.Description)
		b.WriteString(" (")
		b.WriteString(strings.Join(p.Tech, ", "))
		b.WriteString(")\n")
	}
	b.WriteString("\n")

	b.WriteString("Important conversation rules:\n")
	for _, rule := range sp.ConversationRules {
		b.WriteString("- ")
		b.WriteString(rule)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(locale.LanguageReminder(loc))

	return b.String()
}
