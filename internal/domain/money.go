package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidPrice = errors.New("invalid price")

// TND is the currency every catalog price is quoted in.
var TND = currency.MustParseISO("TND")

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount int64) Money {
	return Money{Amount: decimal.NewFromInt(amount), Currency: TND}
}

// ParsePrice reads a display price such as "16 900 TND".
// All whitespace and the first "TND" are stripped, the rest must be a base 10 integer.
func ParsePrice(s string) (Money, error) {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	stripped = strings.Replace(stripped, TND.String(), "", 1)

	n, err := strconv.ParseInt(stripped, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	return NewMoney(n), nil
}

// IntPart returns the amount truncated to an integer.
func (m Money) IntPart() int64 {
	return m.Amount.IntPart()
}

func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(qty))), Currency: m.Currency}
}

func (m Money) Add(other Money) Money {
	cur := m.Currency
	if cur == (currency.Unit{}) {
		cur = other.Currency
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: cur}
}

// String renders the amount with French digit grouping, e.g. "16 900 TND".
func (m Money) String() string {
	cur := m.Currency
	if cur == (currency.Unit{}) {
		cur = TND
	}

	p := message.NewPrinter(language.French)
	grouped := p.Sprintf("%d", m.Amount.IntPart())

	grouped = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, grouped)

	return grouped + " " + cur.String()
}

func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := ParsePrice(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
