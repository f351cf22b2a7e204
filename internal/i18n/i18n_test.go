package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_MatchesLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", "en"},
		{"es", "es"},
		{"es-MX", "es"},
		{"de", "en"},
		{"", "en"},
		{"!!", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.locale).Locale())
		})
	}
}

func TestText(t *testing.T) {
	en, es := New("en"), New("es")

	assert.Equal(t, "Bidding has ended.", en.Text("errors.biddingIsEnded"))
	assert.Equal(t, "La puja ha terminado.", es.Text("errors.biddingIsEnded"))
	assert.Equal(t, "Red is now at 5.00", en.Text(KeyOptionUpdated, "Red", "5.00"))
	assert.Equal(t, "missing.key", en.Text("missing.key"))
}

func TestEveryKeyIsTranslated(t *testing.T) {
	for key := range messages[supported[0]] {
		for _, tag := range supported[1:] {
			_, ok := messages[tag][key]
			assert.True(t, ok, "%s has no %s translation", key, tag)
		}
	}
}

func TestMoney(t *testing.T) {
	en, es := New("en"), New("es")

	assert.Equal(t, "1,234.50", en.Money(123450))
	assert.Equal(t, "0.05", en.Money(5))
	assert.Equal(t, "123.456,00", es.Money(12345600))
}
