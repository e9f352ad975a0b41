package queries

import (
	"errors"

	"shoporder/internal/pkg/guard"
)

var ErrGetAllStatusesQueryIsNotConstructed = errors.New(
	"GetAllStatusesQuery must be created via NewGetAllStatusesQuery constructor",
)

// GetAllStatusesQuery retrieves the whole status registry, ordered by
// position. Admin screens use it to render status pickers and the kanban
// board columns.
type GetAllStatusesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllStatusesQuery creates a query for the status registry.
func NewGetAllStatusesQuery() GetAllStatusesQuery {
	return GetAllStatusesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllStatusesQueryIsNotConstructed)
}

// GetAllStatusesQueryResponse is one status registry row.
type GetAllStatusesQueryResponse struct {
	Code       string
	Label      string
	Position   int
	Color      string
	RedirectTo string
}
