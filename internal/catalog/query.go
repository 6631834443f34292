package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nikolayk812/vespa-storefront/internal/domain"
)

// ParseQuery maps collection query parameters onto filter criteria.
func ParseQuery(q url.Values) (domain.Criteria, error) {
	c := domain.Criteria{
		Search:   q.Get("search"),
		Colors:   splitList(q.Get("colors")),
		Engines:  splitList(q.Get("engines")),
		Features: splitList(q.Get("features")),
	}

	var err error
	if c.MinPrice, err = parseBound(q.Get("minPrice")); err != nil {
		return domain.Criteria{}, fmt.Errorf("minPrice: %w", err)
	}
	if c.MaxPrice, err = parseBound(q.Get("maxPrice")); err != nil {
		return domain.Criteria{}, fmt.Errorf("maxPrice: %w", err)
	}

	return c, nil
}

// Query is the inverse of ParseQuery; unset dimensions are omitted.
func Query(c domain.Criteria) url.Values {
	q := url.Values{}
	if c.Search != "" {
		q.Set("search", c.Search)
	}
	if len(c.Colors) > 0 {
		q.Set("colors", strings.Join(c.Colors, ","))
	}
	if len(c.Engines) > 0 {
		q.Set("engines", strings.Join(c.Engines, ","))
	}
	if len(c.Features) > 0 {
		q.Set("features", strings.Join(c.Features, ","))
	}
	if c.MinPrice != nil {
		q.Set("minPrice", strconv.FormatInt(*c.MinPrice, 10))
	}
	if c.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatInt(*c.MaxPrice, 10))
	}
	return q
}

func splitList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func parseBound(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}

	return &n, nil
}
