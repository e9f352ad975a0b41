package queries

import (
	"context"

	"shoporder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler reads one order summary straight from the
// database, joining the status registry for the customer-facing label.
type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderSummaryQueryHandler creates a handler for order summary queries.
func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no order
// carries the hash.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	var row struct {
		Number      string
		Total       decimal.Decimal
		Currency    string
		StatusLabel string
		StatusColor string
		Paid        bool
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			o.number,
			GREATEST(o.base_price + o.delivery_price - o.sale, 0) AS total,
			o.currency,
			COALESCE(NULLIF(s.public_label, ''), s.label) AS status_label,
			s.color AS status_color,
			o.paid
		FROM orders o
		JOIN statuses s ON s.id = o.status_id
		WHERE o.hash = ?
	`, query.Hash()).Scan(&row)
	if result.Error != nil {
		return GetOrderSummaryQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderSummaryQueryResponse{}, errs.NewObjectNotFoundError("hash", query.Hash())
	}

	return GetOrderSummaryQueryResponse{
		Number:      row.Number,
		Total:       row.Total,
		Currency:    row.Currency,
		StatusLabel: row.StatusLabel,
		StatusColor: row.StatusColor,
		Paid:        row.Paid,
	}, nil
}
