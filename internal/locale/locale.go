// Package locale holds the locale-keyed string tables consumed by the chat
// pipeline. Page-level message catalogs live with the frontend; only the
// strings the API itself emits are kept here.
package locale

import "time"

const Default = "en"

// Supported lists the locale codes the API accepts.
var Supported = []string{"en", "pt-BR", "es", "fr"}

// IsSupported reports whether code is one of the supported locales.
func IsSupported(code string) bool {
	for _, l := range Supported {
		if l == code {
			return true
		}
	}
	return false
}

// Normalize returns code if supported, otherwise the default locale.
func Normalize(code string) string {
	if IsSupported(code) {
		return code
	}
	return Default
}

// languageDirectives open the system prompt, placed first for emphasis.
var languageDirectives = map[string]string{
	"en":    "CRITICAL: You MUST always respond in English. Detect the user's language and respond in the same language. If the user writes in English, respond in English. If they write in Portuguese, Spanish, or French, respond in the corresponding language. Use natural and professional language.",
	"pt-BR": "CRÍTICO: Você DEVE responder SEMPRE em português brasileiro. Detecte o idioma do usuário e responda no mesmo idioma. Se o usuário escrever em português, responda em português brasileiro. Se escrever em inglês, espanhol ou francês, responda no idioma correspondente. Use linguagem natural e profissional.",
	"es":    "CRÍTICO: DEBES responder SIEMPRE en español. Detecta el idioma del usuario y responde en el mismo idioma. Si el usuario escribe en español, responde en español. Si escribe en inglés, portugués o francés, responde en el idioma correspondiente. Usa lenguaje natural y profesional.",
	"fr":    "CRITIQUE: Vous DEVEZ répondre TOUJOURS en français. Détectez la langue de l'utilisateur et répondez dans la même langue. Si l'utilisateur écrit en français, répondez en français. S'il écrit en anglais, espagnol ou portugais, répondez dans la langue correspondante. Utilisez un langage naturel et professionnel.",
}

// languageReminders close the system prompt, re-emphasizing the directive.
var languageReminders = map[string]string{
	"en":    "REMEMBER: Detect the user's language and respond ALWAYS in the same language. If it's English, use natural English.",
	"pt-BR": "LEMBRE-SE: Detecte o idioma do usuário e responda SEMPRE no mesmo idioma. Se for português, use português brasileiro natural.",
	"es":    "RECUERDA: Detecta el idioma del usuario y responde SIEMPRE en el mismo idioma. Si es español, usa español natural.",
	"fr":    "RAPPELEZ-VOUS: Détectez la langue de l'utilisateur et répondez TOUJOURS dans la même langue. Si c'est le français, utilisez un français naturel.",
}

var rateLimitMessages = map[string]string{
	"en":    "You've reached the daily chat limit. Come back tomorrow or reach out through the contact form!",
	"pt-BR": "Você atingiu o limite diário de conversas. Volte amanhã ou entre em contato pelo formulário!",
	"es":    "Has alcanzado el límite diario de chat. ¡Vuelve mañana o escríbeme por el formulario de contacto!",
	"fr":    "Vous avez atteint la limite quotidienne de discussion. Revenez demain ou contactez-moi via le formulaire !",
}

// LanguageDirective returns the opening language-enforcement instruction.
func LanguageDirective(code string) string {
	return languageDirectives[Normalize(code)]
}

// LanguageReminder returns the closing language-enforcement reminder.
func LanguageReminder(code string) string {
	return languageReminders[Normalize(code)]
}

// RateLimitMessage returns the user-facing quota-exhausted text.
func RateLimitMessage(code string) string {
	return rateLimitMessages[Normalize(code)]
}

// resetTimeZone is the timezone used to render reset times for humans.
// The site's audience is primarily Brazilian, matching the original deploy.
var resetTimeZone = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// FormatResetTime renders a reset timestamp (ms since epoch) as a clock
// time in the locale's convention: 12-hour for English, 24-hour elsewhere.
func FormatResetTime(resetMs int64, code string) string {
	ts := time.UnixMilli(resetMs).In(resetTimeZone)
	if Normalize(code) == "en" {
		return ts.Format("03:04 PM")
	}
	return ts.Format("15:04")
}
