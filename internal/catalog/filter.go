package catalog

import (
	"slices"
	"strings"

	"github.com/nikolayk812/vespa-storefront/internal/domain"
)

// Filter returns the products satisfying every set dimension of c, in catalog order.
func (cat *Catalog) Filter(c domain.Criteria) []domain.Product {
	var result []domain.Product

	for _, p := range cat.products {
		if Matches(p, c) {
			result = append(result, p)
		}
	}

	return result
}

func Matches(p domain.Product, c domain.Criteria) bool {
	if c.Search != "" && !matchesAny([]string{p.Name, p.Subtitle, p.Description}, c.Search) {
		return false
	}

	if len(c.Colors) > 0 && !slices.Contains(c.Colors, p.Color) {
		return false
	}

	if len(c.Engines) > 0 {
		engine, ok := p.SpecValue(domain.SpecEngine)
		if !ok || !slices.Contains(c.Engines, engine) {
			return false
		}
	}

	if len(c.Features) > 0 {
		extras, ok := p.SpecValue(domain.SpecExtras)
		if !ok || !hasAllFeatures(splitFeatures(extras), c.Features) {
			return false
		}
	}

	price := p.Price.IntPart()
	if c.MinPrice != nil && price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && price > *c.MaxPrice {
		return false
	}

	return true
}

// hasAllFeatures matches each wanted token against the available ones by
// case-sensitive containment in either direction.
func hasAllFeatures(available, wanted []string) bool {
	for _, w := range wanted {
		found := slices.ContainsFunc(available, func(a string) bool {
			return strings.Contains(a, w) || strings.Contains(w, a)
		})
		if !found {
			return false
		}
	}
	return true
}

func splitFeatures(extras string) []string {
	parts := strings.Split(extras, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (cat *Catalog) Colors() []string {
	var colors []string
	for _, p := range cat.products {
		colors = append(colors, p.Color)
	}
	return uniqueSorted(colors)
}

func (cat *Catalog) Engines() []string {
	var engines []string
	for _, p := range cat.products {
		if v, ok := p.SpecValue(domain.SpecEngine); ok && v != "" {
			engines = append(engines, v)
		}
	}
	return uniqueSorted(engines)
}

func (cat *Catalog) Features() []string {
	var features []string
	for _, p := range cat.products {
		if v, ok := p.SpecValue(domain.SpecExtras); ok {
			for _, f := range splitFeatures(v) {
				if f != "" {
					features = append(features, f)
				}
			}
		}
	}
	return uniqueSorted(features)
}

// PriceRange is the zero range for an empty catalog.
func (cat *Catalog) PriceRange() domain.PriceRange {
	if len(cat.products) == 0 {
		return domain.PriceRange{}
	}

	r := domain.PriceRange{
		Min: cat.products[0].Price.IntPart(),
		Max: cat.products[0].Price.IntPart(),
	}
	for _, p := range cat.products[1:] {
		r.Min = min(r.Min, p.Price.IntPart())
		r.Max = max(r.Max, p.Price.IntPart())
	}

	return r
}

func uniqueSorted(values []string) []string {
	slices.Sort(values)
	return slices.Compact(values)
}
