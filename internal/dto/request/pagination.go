package request

import (
	"movie-reviews/pkg/utils"
)

// PaginatedRequest holds page parameters as parsed from the query
// string. PerPage is clamped against the configured ceiling by the
// service layer, never rejected.
type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.PerPage)
}
