// Package i18n translates the user-facing messages of the meal plan
// service. Message catalogs are compiled in; the locale comes from the
// request's Accept-Language header.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the fallback language (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header carrying the language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys against per-locale catalogs.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator builds a translator over the compiled-in catalogs.
func NewTranslator() *Translator {
	return &Translator{messages: catalogs()}
}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate looks up key in the given locale. A locale without a catalog,
// or a key missing from its catalog, falls back to English; an unknown key
// comes back verbatim so the caller still has something to show.
func (t *Translator) Translate(key, locale string) string {
	catalog, ok := t.messages[locale]
	if !ok {
		catalog = t.messages[DefaultLocale]
	}
	if msg, ok := catalog[key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale reads the request locale from the Accept-Language header.
// Only the first listed language counts, region subtags are dropped
// ("pt-BR" becomes "pt"), and anything without a catalog falls back to
// DefaultLocale.
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	first := strings.TrimSpace(strings.Split(header, ",")[0])
	lang := strings.ToLower(strings.Split(first, ";")[0])
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}

	if _, ok := catalogs()[lang]; ok {
		return lang
	}
	return DefaultLocale
}

// catalogs holds every translation the service ships. Keys live in keys.go;
// adding a locale means adding a map here, nothing else.
func catalogs() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.unauthorized":         "Unauthorized",
			"error.invalid_credentials":  "User Not registered",
			"error.api_key_required":     "API key is required",
			"error.invalid_api_key":      "Invalid API key",
			"error.forbidden":            "Forbidden",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Conflict",
			"error.validation.meals":     "meals: exactly three meal slots are required",
			"error.validation.targets":   "targets: values must be non-negative numbers",
			"error.validation.plan_date": "date: must be in YYYY-MM-DD format",
			"error.invalid_token":        "Invalid or expired token",
			"error.token_required":       "Authentication token is required",

			"success.plan_optimized": "Serving sizes optimized successfully",
			"success.plan_saved":     "Meal plan saved successfully",
		},
		"pt": {
			"error.invalid_request":      "Requisição inválida",
			"error.invalid_request_body": "Corpo da requisição inválido",
			"error.internal_error":       "Ocorreu um erro inesperado",
			"error.unauthorized":         "Não autorizado",
			"error.invalid_credentials":  "Usuário não registrado",
			"error.api_key_required":     "Chave de API é obrigatória",
			"error.invalid_api_key":      "Chave de API inválida",
			"error.forbidden":            "Proibido",
			"error.not_found":            "Não encontrado",
			"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
			"error.conflict":             "Conflito",
			"error.validation.meals":     "meals: exatamente três refeições são necessárias",
			"error.validation.targets":   "targets: os valores devem ser números não negativos",
			"error.validation.plan_date": "date: deve estar no formato YYYY-MM-DD",
			"error.invalid_token":        "Token inválido ou expirado",
			"error.token_required":       "Token de autenticação é obrigatório",

			"success.plan_optimized": "Porções otimizadas com sucesso",
			"success.plan_saved":     "Plano de refeições salvo com sucesso",
		},
		"nl": {
			"error.invalid_request":      "Ongeldig verzoek",
			"error.invalid_request_body": "Ongeldige aanvraag body",
			"error.internal_error":       "Er is een onverwachte fout opgetreden",
			"error.unauthorized":         "Niet geautoriseerd",
			"error.invalid_credentials":  "Gebruiker niet geregistreerd",
			"error.api_key_required":     "API-sleutel is vereist",
			"error.invalid_api_key":      "Ongeldige API-sleutel",
			"error.forbidden":            "Verboden",
			"error.not_found":            "Niet gevonden",
			"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":             "Conflict",
			"error.validation.meals":     "meals: precies drie maaltijden zijn vereist",
			"error.validation.targets":   "targets: waarden moeten niet-negatieve getallen zijn",
			"error.validation.plan_date": "date: moet in YYYY-MM-DD formaat zijn",
			"error.invalid_token":        "Ongeldig of verlopen token",
			"error.token_required":       "Authenticatietoken is vereist",

			"success.plan_optimized": "Porties succesvol geoptimaliseerd",
			"success.plan_saved":     "Maaltijdplan succesvol opgeslagen",
		},
	}
}
