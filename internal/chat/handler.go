package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/viniciusgdoliveira/portfolio-api/internal/api"
	"github.com/viniciusgdoliveira/portfolio-api/internal/locale"
	"github.com/viniciusgdoliveira/portfolio-api/internal/metrics"
	"github.com/viniciusgdoliveira/portfolio-api/internal/openai"
	"github.com/viniciusgdoliveira/portfolio-api/internal/personality"
	"github.com/viniciusgdoliveira/portfolio-api/internal/ratelimit"
)

// Handler runs the chat request pipeline: admission, credential check,
// validation, prompt building, budgeting, and streamed completion.
type Handler struct {
	limiter       *ratelimit.Limiter
	streamer      openai.Streamer
	persona       personality.Personality
	validate      *validator.Validate
	apiKey        func() string
	streamTimeout time.Duration
}

func NewHandler(limiter *ratelimit.Limiter, streamer openai.Streamer, persona personality.Personality, apiKey func() string, streamTimeout time.Duration) *Handler {
	v := validator.New()
	// Report errors under JSON field names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		limiter:       limiter,
		streamer:      streamer,
		persona:       persona,
		validate:      v,
		apiKey:        apiKey,
		streamTimeout: streamTimeout,
	}
}

// HandleChat is POST /api/chat. On success the response is an SSE stream;
// every rejection path maps to one of the documented JSON error shapes.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := ratelimit.ClientIP(r)

	// Admission first. The quota unit is consumed here; client-side
	// retries and disconnects do not refund it.
	res := h.limiter.Check(ctx, identity)
	if !res.Allowed {
		metrics.RateLimitDeniedTotal.Inc()
		metrics.ChatCompletionsTotal.WithLabelValues("rate_limited").Inc()

		loc := locale.Normalize(r.URL.Query().Get("locale"))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(h.limiter.Limit()))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetTime, 10))
		w.Header().Set("Retry-After", strconv.FormatInt(retryAfterSeconds(res.ResetTime), 10))

		api.JSON(w, http.StatusTooManyRequests, rateLimitedResponse{
			Error:   "Rate limit exceeded",
			Message: locale.RateLimitMessage(loc),
			RateLimit: rateLimitedDetails{
				Current:            res.Current,
				Remaining:          res.Remaining,
				ResetTime:          res.ResetTime,
				ResetTimeFormatted: locale.FormatResetTime(res.ResetTime, loc),
			},
		})
		return
	}

	// Fail closed when the provider credential is missing or still the
	// build-time placeholder. Checked per request so the key can be
	// rotated without a restart.
	if key := h.apiKey(); key == "" || strings.HasPrefix(key, "sk-dummy") {
		metrics.ChatCompletionsTotal.WithLabelValues("config_error").Inc()
		api.ErrorWithMessage(w, http.StatusInternalServerError,
			"OpenAI API key not configured",
			"Please configure your OPENAI_API_KEY environment variable.")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ChatCompletionsTotal.WithLabelValues("invalid_request").Inc()
		api.ValidationError(w, "Invalid request body", decodeErrorDetails(err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		metrics.ChatCompletionsTotal.WithLabelValues("invalid_request").Inc()
		api.ValidationError(w, "Validation failed", validationDetails(err))
		return
	}

	loc := locale.Normalize(req.Locale)
	limits := h.persona.ConversationLimits

	if len(req.Messages) > limits.MaxConversationLength {
		metrics.ChatCompletionsTotal.WithLabelValues("too_long").Inc()
		api.ErrorWithMessage(w, http.StatusBadRequest,
			"Conversation too long",
			"Please start a new conversation. This helps me provide better responses!")
		return
	}

	system := Message{Role: "system", Content: BuildSystemPrompt(loc, h.persona.SystemPrompt)}
	window := TrimConversation(append([]Message{system}, req.Messages...), limits.MaxTotalTokens)
	totalTokens := TotalTokens(window)
	shouldWarn := totalTokens > limits.TokenWarningThreshold

	streamCtx, cancel := context.WithTimeout(ctx, h.streamTimeout)
	defer cancel()

	stream, err := h.streamer.Stream(streamCtx, toProviderMessages(window), limits.MaxTokensPerResponse)
	if err != nil {
		slog.Error("chat: starting completion stream", "error", err, "locale", loc)
		metrics.ChatCompletionsTotal.WithLabelValues("upstream_error").Inc()
		api.HandleError(w, err)
		return
	}
	defer stream.Close()

	sse, err := newSSEWriter(w)
	if err != nil {
		slog.Error("chat: response writer cannot stream", "error", err)
		metrics.ChatCompletionsTotal.WithLabelValues("upstream_error").Inc()
		api.HandleError(w, err)
		return
	}

	start := time.Now()
	rateInfo := RateLimitInfo{Remaining: res.Remaining, Current: res.Current, ResetTime: res.ResetTime}

	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			// Normal completion: terminal sentinel, then close.
			if err := sse.WriteDone(); err != nil {
				slog.Warn("chat: writing [DONE] sentinel", "error", err)
			}
			metrics.ChatCompletionsTotal.WithLabelValues("ok").Inc()
			metrics.ChatStreamDuration.Observe(time.Since(start).Seconds())
			return
		}
		if err != nil {
			// Mid-stream failure: abort without [DONE] so the client
			// can tell truncation from success.
			slog.Error("chat: completion stream failed mid-stream", "error", err)
			metrics.ChatCompletionsTotal.WithLabelValues("stream_error").Inc()
			return
		}

		if err := sse.WriteChunk(StreamChunk{
			Content:    delta,
			ShouldWarn: shouldWarn,
			TokensUsed: totalTokens,
			RateLimit:  rateInfo,
		}); err != nil {
			// Client went away; stop pulling from the provider.
			slog.Debug("chat: client disconnected mid-stream", "error", err)
			metrics.ChatCompletionsTotal.WithLabelValues("client_disconnect").Inc()
			return
		}
	}
}

// HandleStatus is GET /api/chat: conversation limits, the caller's quota,
// and canned quick replies. No side effects.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st := h.limiter.Status(ratelimit.ClientIP(r))
	limits := h.persona.ConversationLimits

	api.JSON(w, http.StatusOK, statusResponse{
		Limits: limitsView{
			MaxConversationLength: limits.MaxConversationLength,
			MaxTotalTokens:        limits.MaxTotalTokens,
			TokenWarningThreshold: limits.TokenWarningThreshold,
			MaxTokensPerResponse:  limits.MaxTokensPerResponse,
		},
		RateLimits: rateLimitStatusView{
			MaxPerDay: st.Limit,
			Current:   st.Current,
			Remaining: st.Remaining,
			ResetTime: st.ResetTime,
			WindowMs:  h.limiter.Window().Milliseconds(),
		},
		QuickResponses: h.persona.QuickResponses,
		Info:           "Chat API is ready",
	})
}

func toProviderMessages(messages []Message) []openai.Message {
	out := make([]openai.Message, len(messages))
	for i, m := range messages {
		out[i] = openai.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

func retryAfterSeconds(resetTimeMs int64) int64 {
	secs := (resetTimeMs - time.Now().UnixMilli() + 999) / 1000
	if secs < 1 {
		secs = 1
	}
	return secs
}

// decodeErrorDetails maps JSON decoding failures onto the per-field detail
// shape so a wrong-typed field reports under its own name.
func decodeErrorDetails(err error) map[string][]string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string][]string{
			typeErr.Field: {fmt.Sprintf("expected %s", typeErr.Type)},
		}
	}
	return map[string][]string{"body": {"must be valid JSON"}}
}

func validationDetails(err error) map[string][]string {
	details := make(map[string][]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		details["body"] = []string{err.Error()}
		return details
	}

	for _, fe := range verrs {
		// "Request.messages[0].content" -> "messages[0].content"
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		details[field] = append(details[field], validationMessage(fe))
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s items", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
