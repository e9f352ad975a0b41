package services

import (
	"shoporder/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// PaymentLine is one line of a hosted-gateway payment session: item lines,
// the delivery line, and when needed a rounding adjustment.
type PaymentLine struct {
	Label    string
	Amount   decimal.Decimal
	Quantity int
}

// PaymentLineBuilder turns an order into the line items of a gateway payment
// session. The gateway validates that line amounts sum exactly to the session
// total, while the order total can differ from the raw line sum (sales,
// price overrides, historical roundings). The builder therefore appends a
// rounding-adjustment line carrying the difference, so the sum of lines
// always equals the order's effective price to the cent.
type PaymentLineBuilder struct{}

// NewPaymentLineBuilder creates a PaymentLineBuilder.
func NewPaymentLineBuilder() PaymentLineBuilder {
	return PaymentLineBuilder{}
}

// Build returns the payment lines for the order. The rounding line may be
// negative; it is the only line allowed to be.
func (PaymentLineBuilder) Build(o *order.Order) []PaymentLine {
	total := o.EffectivePrice().Amount()

	lines := make([]PaymentLine, 0, len(o.Items())+2)
	sum := decimal.Zero

	for _, item := range o.Items() {
		lineTotal := item.LineTotal().Amount()
		lines = append(lines, PaymentLine{
			Label:    item.Label(),
			Amount:   lineTotal,
			Quantity: item.Quantity(),
		})
		sum = sum.Add(lineTotal)
	}

	if o.DeliveryPrice().IsPositive() {
		amount := o.DeliveryPrice().Amount()
		lines = append(lines, PaymentLine{Label: "Delivery", Amount: amount, Quantity: 1})
		sum = sum.Add(amount)
	}

	if adjustment := total.Sub(sum); !adjustment.IsZero() {
		lines = append(lines, PaymentLine{Label: "Rounding adjustment", Amount: adjustment, Quantity: 1})
	}

	return lines
}
