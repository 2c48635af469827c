package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viniciusgdoliveira/portfolio-api/internal/locale"
	"github.com/viniciusgdoliveira/portfolio-api/internal/personality"
)

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	sp := personality.Default().SystemPrompt
	assert.Equal(t, BuildSystemPrompt("en", sp), BuildSystemPrompt("en", sp))
}

func TestBuildSystemPrompt_LanguageDirectiveFirst(t *testing.T) {
	sp := personality.Default().SystemPrompt

	for _, loc := range locale.Supported {
		prompt := BuildSystemPrompt(loc, sp)
		assert.True(t, strings.HasPrefix(prompt, locale.LanguageDirective(loc)),
			"prompt for %s must open with its language directive", loc)
		assert.True(t, strings.HasSuffix(prompt, locale.LanguageReminder(loc)),
			"prompt for %s must close with its language reminder", loc)
	}
}

func TestBuildSystemPrompt_ContainsPersonaSections(t *testing.T) {
	p := personality.Default()
	prompt := BuildSystemPrompt("en", p.SystemPrompt)

	assert.Contains(t, prompt, p.SystemPrompt.Base)
	assert.Contains(t, prompt, "Your personality traits:")
	assert.Contains(t, prompt, "Your technical expertise:")
	assert.Contains(t, prompt, "Your key projects:")
	assert.Contains(t, prompt, "Important conversation rules:")
	for _, skill := range p.SystemPrompt.PrimarySkills {
		assert.Contains(t, prompt, skill)
	}
}

func TestBuildSystemPrompt_UnknownLocaleFallsBack(t *testing.T) {
	sp := personality.Default().SystemPrompt
	assert.Equal(t, BuildSystemPrompt("en", sp), BuildSystemPrompt("de", sp))
}
