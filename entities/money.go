package entities

import "github.com/shopspring/decimal"

type Money struct {
	Amount   decimal.Decimal `json:"amount" db:"amount"`
	Currency string          `json:"currency" db:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount.Round(2),
		Currency: currency,
	}
}

// Mul returns the money multiplied by a unit count, rounded to two decimal places.
func (m Money) Mul(quantity int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		Currency: m.Currency,
	}
}

func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}
