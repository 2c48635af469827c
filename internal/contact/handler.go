package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/resend/resend-go/v2"

	"github.com/viniciusgdoliveira/portfolio-api/internal/api"
	"github.com/viniciusgdoliveira/portfolio-api/internal/config"
	"github.com/viniciusgdoliveira/portfolio-api/internal/metrics"
)

// Sender sends one transactional email. Satisfied by the Resend client;
// faked in tests.
type Sender interface {
	Send(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type resendSender struct {
	client *resend.Client
}

func (s resendSender) Send(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	return s.client.Emails.SendWithContext(ctx, params)
}

// Handler receives contact form submissions and relays them by email.
// Fire-and-forget: no retries, no queue.
type Handler struct {
	cfg      config.ResendConfig
	sender   Sender
	validate *validator.Validate
}

func NewHandler(cfg config.ResendConfig) *Handler {
	h := &Handler{cfg: cfg, validate: newValidator()}
	if cfg.APIKey != "" {
		h.sender = resendSender{client: resend.NewClient(cfg.APIKey)}
	}
	return h
}

// NewHandlerWithSender injects a custom sender, for tests.
func NewHandlerWithSender(cfg config.ResendConfig, sender Sender) *Handler {
	return &Handler{cfg: cfg, sender: sender, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Letters (any script) and spaces, matching the form's name rule.
	_ = v.RegisterValidation("namechars", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
				return false
			}
		}
		return true
	})
	return v
}

// HandleSubmit is POST /api/contact.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if h.cfg.APIKey == "" || h.cfg.APIKey == "dummy-key-for-build" || h.sender == nil {
		metrics.ContactEmailsTotal.WithLabelValues("not_configured").Inc()
		api.Error(w, http.StatusServiceUnavailable, "Email service not configured")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ContactEmailsTotal.WithLabelValues("invalid").Inc()
		api.ValidationError(w, "Invalid request body", map[string][]string{"body": {"must be valid JSON"}})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		metrics.ContactEmailsTotal.WithLabelValues("invalid").Inc()
		api.ValidationError(w, "Validation failed", validationDetails(err))
		return
	}

	resp, err := h.sender.Send(r.Context(), &resend.SendEmailRequest{
		From:    h.cfg.FromEmail,
		To:      []string{h.cfg.ToEmail},
		Subject: "Portfolio Contact: " + req.Subject,
		Html:    renderEmail(req),
		ReplyTo: req.Email,
	})
	if err != nil {
		slog.Error("contact: sending email", "error", err)
		metrics.ContactEmailsTotal.WithLabelValues("send_error").Inc()
		api.Error(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	metrics.ContactEmailsTotal.WithLabelValues("ok").Inc()
	api.JSON(w, http.StatusOK, sentResponse{Message: "Email sent successfully", ID: resp.Id})
}

func renderEmail(req Request) string {
	esc := func(s string) string { return html.EscapeString(s) }
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Contact Form Submission</h2>
  <p><strong>Name:</strong> %s %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Subject:</strong> %s</p>
  <h3>Message</h3>
  <p style="white-space: pre-wrap;">%s</p>
  <p style="color: #6c757d;">This message was sent from your portfolio contact form. Reply directly to this email to respond to %s.</p>
</div>`,
		esc(req.FirstName), esc(req.LastName), esc(req.Email), esc(req.Subject), esc(req.Message), esc(req.FirstName))
}

func validationDetails(err error) map[string][]string {
	details := make(map[string][]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		details["body"] = []string{err.Error()}
		return details
	}

	for _, fe := range verrs {
		details[fe.Field()] = append(details[fe.Field()], validationMessage(fe))
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "namechars":
		return "can only contain letters and spaces"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
