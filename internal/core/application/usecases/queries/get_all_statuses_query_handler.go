package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllStatusesQueryHandler reads the status registry from the database.
type GetAllStatusesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllStatusesQueryHandler creates a handler for status registry queries.
func NewGetAllStatusesQueryHandler(db *gorm.DB) GetAllStatusesQueryHandler {
	return GetAllStatusesQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAllStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetAllStatusesQuery,
) ([]GetAllStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]GetAllStatusesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			label,
			position,
			color,
			redirect_to
		FROM statuses
		ORDER BY position
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetAllStatusesQueryResponse
		if err := rows.Scan(&row.Code, &row.Label, &row.Position, &row.Color, &row.RedirectTo); err != nil {
			return nil, err
		}
		statuses = append(statuses, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}
