package personality

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasUsableLimits(t *testing.T) {
	p := Default()
	assert.Equal(t, 50, p.ConversationLimits.MaxConversationLength)
	assert.Greater(t, p.ConversationLimits.MaxTotalTokens, p.ConversationLimits.TokenWarningThreshold)
	assert.NotEmpty(t, p.SystemPrompt.Base)
	assert.NotEmpty(t, p.QuickResponses["en"])
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_MergesOverrideOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"conversation_limits": {
			"max_conversation_length": 20,
			"max_total_tokens": 2000,
			"token_warning_threshold": 1500,
			"max_tokens_per_response": 300
		}
	}`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, p.ConversationLimits.MaxConversationLength)
	// Untouched sections keep their defaults.
	assert.Equal(t, Default().SystemPrompt.Base, p.SystemPrompt.Base)
}

func TestLoad_RejectsInvalidLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"conversation_limits": {"max_conversation_length": 0}
	}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
