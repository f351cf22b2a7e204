// Package i18n renders the user-facing message keys and money amounts in
// the session locale.
package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Message keys used by the terminal client. Payment failure keys are the
// ones returned by payment.MessageKey.
const (
	KeyContributionDone = "success.contribution"
	KeyGuestSignUp      = "guest.signUp"
	KeyQuote            = "payment.quote"
	KeyOptionUpdated    = "push.optionUpdated"
	KeyPostUpdated      = "push.postUpdated"
	KeyTextRejected     = "validation.rejected"
	KeyOffline          = "status.offline"
	KeyListExhausted    = "status.noMoreOptions"
	KeyUnexpected       = "errors.unexpected"
)

var supported = []language.Tag{language.English, language.Spanish}

var messages = map[language.Tag]map[string]string{
	language.English: {
		"errors.notEnoughMoney":    "Not enough money on the card.",
		"errors.cardNotFound":      "The card was not found.",
		"errors.cardCannotBeUsed":  "This card cannot be used.",
		"errors.biddingNotStarted": "Bidding has not started yet.",
		"errors.biddingIsEnded":    "Bidding has ended.",
		"errors.optionNotUnique":   "An option with this title already exists.",
		"errors.amountTooLow":      "The amount is below the minimum.",
		"errors.requestFailed":     "Something went wrong. Please try again.",
		KeyUnexpected:              "Unexpected error.",
		KeyContributionDone:        "Done! %s is now at %s.",
		KeyGuestSignUp:             "Sign up to finish your payment: %s",
		KeyQuote:                   "Amount %s + fee %s = %s",
		KeyOptionUpdated:           "%s is now at %s",
		KeyPostUpdated:             "Total raised: %s across %d options",
		KeyTextRejected:            "This title is not allowed.",
		KeyOffline:                 "Backend unreachable, showing cached data.",
		KeyListExhausted:           "No more options.",
	},
	language.Spanish: {
		"errors.notEnoughMoney":    "No hay saldo suficiente en la tarjeta.",
		"errors.cardNotFound":      "No se encontró la tarjeta.",
		"errors.cardCannotBeUsed":  "Esta tarjeta no se puede usar.",
		"errors.biddingNotStarted": "La puja aún no ha comenzado.",
		"errors.biddingIsEnded":    "La puja ha terminado.",
		"errors.optionNotUnique":   "Ya existe una opción con este título.",
		"errors.amountTooLow":      "El importe es inferior al mínimo.",
		"errors.requestFailed":     "Algo salió mal. Inténtalo de nuevo.",
		KeyUnexpected:              "Error inesperado.",
		KeyContributionDone:        "¡Listo! %s está ahora en %s.",
		KeyGuestSignUp:             "Regístrate para completar el pago: %s",
		KeyQuote:                   "Importe %s + comisión %s = %s",
		KeyOptionUpdated:           "%s está ahora en %s",
		KeyPostUpdated:             "Total recaudado: %s en %d opciones",
		KeyTextRejected:            "Este título no está permitido.",
		KeyOffline:                 "Servidor inaccesible, mostrando datos en caché.",
		KeyListExhausted:           "No hay más opciones.",
	},
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for locale, falling back to English for
// unsupported or malformed locales.
func New(locale string) *Translator {
	tag, _, _ := matcher.Match(language.Make(locale))
	base, _ := tag.Base()
	tag = language.Make(base.String())
	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Locale is the matched language, e.g. "es".
func (t *Translator) Locale() string {
	return t.tag.String()
}

// Text renders key with args. Unknown keys are returned as they are.
func (t *Translator) Text(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Money formats an amount in minor units with two decimals and the
// locale's grouping.
func (t *Translator) Money(minor int64) string {
	major := decimal.New(minor, -2).InexactFloat64()
	return t.printer.Sprint(number.Decimal(major, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
