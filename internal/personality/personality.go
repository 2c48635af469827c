// Package personality holds the chatbot's persona and conversation limits.
// Defaults are compiled in; a JSON file can override them at deploy time so
// the persona can be edited without a rebuild.
package personality

import (
	"encoding/json"
	"fmt"
	"os"
)

type Personality struct {
	SystemPrompt       SystemPrompt        `json:"system_prompt"`
	ConversationLimits Limits              `json:"conversation_limits"`
	QuickResponses     map[string][]string `json:"quick_responses"`
}

type SystemPrompt struct {
	Base              string    `json:"base"`
	Traits            []string  `json:"personality_traits"`
	PrimarySkills     []string  `json:"primary_skills"`
	SecondarySkills   []string  `json:"secondary_skills"`
	Projects          []Project `json:"projects"`
	ConversationRules []string  `json:"conversation_rules"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
}

// Limits bound a single conversation. Token counts use the ~4 chars/token
// estimate, not provider tokenization.
type Limits struct {
	MaxConversationLength int `json:"max_conversation_length"`
	MaxTotalTokens        int `json:"max_total_tokens"`
	TokenWarningThreshold int `json:"token_warning_threshold"`
	MaxTokensPerResponse  int `json:"max_tokens_per_response"`
}

// Default returns the compiled-in persona.
func Default() Personality {
	return Personality{
		SystemPrompt: SystemPrompt{
			Base: "You are the AI assistant on Vinicius G. de Oliveira's portfolio website. " +
				"You speak as a friendly representative of Vinicius, a full-stack developer " +
				"from Brazil. Answer questions about his background, skills, and projects. " +
				"Keep answers concise and invite visitors to use the contact form for " +
				"opportunities or collaborations.",
			Traits: []string{
				"Friendly and approachable",
				"Enthusiastic about web technology",
				"Direct and concise",
				"Professional but informal",
			},
			PrimarySkills: []string{
				"TypeScript", "React", "Next.js", "Node.js", "Go",
			},
			SecondarySkills: []string{
				"PostgreSQL", "Redis", "Docker", "Shopify (Liquid)", "Firebase",
			},
			Projects: []Project{
				{
					Title:       "Portfolio Website",
					Description: "This site: internationalized portfolio with an AI chat assistant",
					Tech:        []string{"Next.js", "OpenAI API", "Resend"},
				},
				{
					Title:       "E-commerce Storefronts",
					Description: "Custom Shopify storefronts and headless commerce builds",
					Tech:        []string{"Shopify", "Liquid", "React"},
				},
			},
			ConversationRules: []string{
				"Only discuss Vinicius, his work, skills, and projects",
				"Politely decline off-topic requests",
				"Never invent projects or experience that are not listed",
				"Suggest the contact form for job opportunities",
			},
		},
		ConversationLimits: Limits{
			MaxConversationLength: 50,
			MaxTotalTokens:        4000,
			TokenWarningThreshold: 3000,
			MaxTokensPerResponse:  500,
		},
		QuickResponses: map[string][]string{
			"en":    {"What projects have you built?", "What's your tech stack?", "How can I hire you?"},
			"pt-BR": {"Quais projetos você já construiu?", "Qual é a sua stack?", "Como posso te contratar?"},
			"es":    {"¿Qué proyectos has construido?", "¿Cuál es tu stack?", "¿Cómo puedo contratarte?"},
			"fr":    {"Quels projets avez-vous réalisés ?", "Quelle est votre stack ?", "Comment puis-je vous embaucher ?"},
		},
	}
}

// Load returns the persona, merging the JSON file at path over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Personality, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading personality file: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing personality file: %w", err)
	}

	if p.ConversationLimits.MaxConversationLength < 1 {
		return p, fmt.Errorf("max_conversation_length must be positive, got %d", p.ConversationLimits.MaxConversationLength)
	}
	if p.ConversationLimits.MaxTotalTokens < 1 {
		return p, fmt.Errorf("max_total_tokens must be positive, got %d", p.ConversationLimits.MaxTotalTokens)
	}
	return p, nil
}
