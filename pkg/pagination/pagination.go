package pagination

import (
	"strconv"

	"videotube/pkg/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int range.
	MaxPage = 1_000_000
)

type Params struct {
	Page  int
	Limit int
}

// Parse reads raw page/limit query values. Empty values fall back to the
// defaults; anything present must be a positive integer, and page may not
// exceed MaxPage.
func Parse(rawPage, rawLimit string) (Params, error) {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return Params{}, apperr.Validation("page must be a positive integer")
		}
		if n > MaxPage {
			return Params{}, apperr.Validation("page must not exceed %d", MaxPage)
		}
		p.Page = n
	}
	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 {
			return Params{}, apperr.Validation("limit must be a positive integer")
		}
		if n > MaxLimit {
			n = MaxLimit
		}
		p.Limit = n
	}
	return p, nil
}

func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: TotalPages(total, p.Limit),
	}
}

func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
