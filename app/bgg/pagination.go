package bgg

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
)

// FetchAllPages fetches every page of a paginated JSON resource and returns
// the concatenated data in page order. Pages are requested one at a time.
func FetchAllPages[T any](ctx context.Context, fetcher Fetcher, path string, params map[string]string) ([]T, error) {
	first, err := fetchPage[T](ctx, fetcher, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first page of %s: %w", path, err)
	}

	items := append([]T(nil), first.Data...)

	numPages := 1
	if first.Pagination.PerPage > 0 {
		numPages = (first.Pagination.Total + first.Pagination.PerPage - 1) / first.Pagination.PerPage
	}

	for page := 2; page <= numPages; page++ {
		pageParams := maps.Clone(params)
		if pageParams == nil {
			pageParams = make(map[string]string, 1)
		}
		pageParams["page"] = strconv.Itoa(page)

		next, err := fetchPage[T](ctx, fetcher, path, pageParams)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d of %s: %w", page, path, err)
		}
		items = append(items, next.Data...)
	}

	slog.Debug("Paginated fetch completed", "path", path, "pages", numPages, "items", len(items))

	return items, nil
}

func fetchPage[T any](ctx context.Context, fetcher Fetcher, path string, params map[string]string) (*Page[T], error) {
	data, err := fetcher.Fetch(ctx, APIJSON, path, params)
	if err != nil {
		return nil, err
	}
	return DecodeJSON[Page[T]](data)
}
