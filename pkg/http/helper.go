package http

import (
	"net/http"
	"strconv"

	"dwellio/pkg/config"
	apperrors "dwellio/pkg/errors"
)

// ExtractPageLimit reads the 1-based page number and page size from the
// query string, falling back to the canonical defaults (page=1, limit=10).
func ExtractPageLimit(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	page := 1
	if s := query.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid page parameter: " + s)
		}
		page = v
	}

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	page = config.NormalizePage(page)
	limit = config.NormalizePageLimit(limit)

	return page, limit, nil
}
