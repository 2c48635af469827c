package chat

// Message is one conversation turn. The system message, when present, is
// always conceptually first regardless of trimming.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// Request is the POST /api/chat body. The upper bound on message count is
// enforced by the conversation-length guard so the client gets the
// "start a new conversation" message instead of a generic validation error.
type Request struct {
	Messages []Message `json:"messages" validate:"required,min=1,dive"`
	Locale   string    `json:"locale" validate:"omitempty,oneof=en pt-BR es fr"`
}

// RateLimitInfo mirrors the limiter result on the wire.
type RateLimitInfo struct {
	Remaining int   `json:"remaining"`
	Current   int   `json:"current"`
	ResetTime int64 `json:"resetTime"`
}

// StreamChunk is the JSON payload of one SSE data frame.
type StreamChunk struct {
	Content    string        `json:"content"`
	ShouldWarn bool          `json:"shouldWarn"`
	TokensUsed int           `json:"tokensUsed"`
	RateLimit  RateLimitInfo `json:"rateLimit"`
}

// rateLimitedResponse is the 429 body.
type rateLimitedResponse struct {
	Error     string             `json:"error"`
	Message   string             `json:"message"`
	RateLimit rateLimitedDetails `json:"rateLimit"`
}

type rateLimitedDetails struct {
	Current            int    `json:"current"`
	Remaining          int    `json:"remaining"`
	ResetTime          int64  `json:"resetTime"`
	ResetTimeFormatted string `json:"resetTimeFormatted"`
}

// statusResponse is the GET /api/chat body.
type statusResponse struct {
	Limits         limitsView          `json:"limits"`
	RateLimits     rateLimitStatusView `json:"rateLimits"`
	QuickResponses map[string][]string `json:"quickResponses"`
	Info           string              `json:"info"`
}

type limitsView struct {
	MaxConversationLength int `json:"max_conversation_length"`
	MaxTotalTokens        int `json:"max_total_tokens"`
	TokenWarningThreshold int `json:"token_warning_threshold"`
	MaxTokensPerResponse  int `json:"max_tokens_per_response"`
}

type rateLimitStatusView struct {
	MaxPerDay int   `json:"maxPerDay"`
	Current   int   `json:"current"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"resetTime"`
	WindowMs  int64 `json:"windowMs"`
}
