package payments

import (
	"context"
	"math/rand"

	"booking/entities"

	"github.com/shopspring/decimal"
)

// Gateway is the payment-provider capability used by settlement and
// cancellation. The simulated implementation can be swapped for a real
// provider client behind the same contract.
type Gateway interface {
	Charge(ctx context.Context, amount entities.Money, method string) (bool, error)
	Refund(ctx context.Context, amount entities.Money) (bool, error)
	ValidateAmount(amount entities.Money) error
}

type SimulatedGateway struct {
	chargeSuccessPercent int
	refundSuccessPercent int
	maxAmount            decimal.Decimal
}

func NewSimulatedGateway(chargeSuccessPercent, refundSuccessPercent int, maxAmount decimal.Decimal) *SimulatedGateway {
	return &SimulatedGateway{
		chargeSuccessPercent: chargeSuccessPercent,
		refundSuccessPercent: refundSuccessPercent,
		maxAmount:            maxAmount,
	}
}

func (g *SimulatedGateway) Charge(_ context.Context, _ entities.Money, _ string) (bool, error) {
	return rand.Intn(100) < g.chargeSuccessPercent, nil
}

func (g *SimulatedGateway) Refund(_ context.Context, _ entities.Money) (bool, error) {
	return rand.Intn(100) < g.refundSuccessPercent, nil
}

func (g *SimulatedGateway) ValidateAmount(amount entities.Money) error {
	if !amount.IsPositive() || amount.Amount.GreaterThan(g.maxAmount) {
		return entities.ErrInvalidAmount
	}
	return nil
}
