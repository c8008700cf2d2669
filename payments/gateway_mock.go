package payments

import (
	"context"
	"sync"

	"booking/entities"

	"github.com/shopspring/decimal"
)

// GatewayMock gives tests deterministic charge/refund outcomes and records
// every call.
type GatewayMock struct {
	lock sync.Mutex

	ChargeResult bool
	RefundResult bool

	Charges []entities.Money
	Refunds []entities.Money
}

func (g *GatewayMock) Charge(_ context.Context, amount entities.Money, _ string) (bool, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.Charges = append(g.Charges, amount)
	return g.ChargeResult, nil
}

func (g *GatewayMock) Refund(_ context.Context, amount entities.Money) (bool, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.Refunds = append(g.Refunds, amount)
	return g.RefundResult, nil
}

func (g *GatewayMock) ValidateAmount(amount entities.Money) error {
	if !amount.IsPositive() || amount.Amount.GreaterThan(decimal.NewFromInt(100_000)) {
		return entities.ErrInvalidAmount
	}
	return nil
}
