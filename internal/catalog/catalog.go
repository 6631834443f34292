package catalog

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/nikolayk812/vespa-storefront/internal/domain"
	"gopkg.in/yaml.v3"
)

const defaultFeaturedLimit = 2

// Catalog is immutable reference data loaded once at startup.
type Catalog struct {
	products []domain.Product
	bySlug   map[string]int
}

func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: slices.Clone(products),
		bySlug:   make(map[string]int, len(products)),
	}

	for i, p := range c.products {
		if p.Slug == "" {
			return nil, fmt.Errorf("product[%d] slug is empty", i)
		}
		if _, ok := c.bySlug[p.Slug]; ok {
			return nil, fmt.Errorf("product[%s] is duplicated", p.Slug)
		}
		c.bySlug[p.Slug] = i
	}

	return c, nil
}

type catalogFile struct {
	Products []domain.Product `yaml:"products"`
}

// LoadFile reads a YAML catalog. Prices use the display form, e.g. "16 900 TND".
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	return New(f.Products)
}

func (c *Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

// BySlug never fails: a miss is reported through the boolean.
func (c *Catalog) BySlug(slug string) (domain.Product, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Featured(limit int) []domain.Product {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	return slices.Clone(c.products[:min(limit, len(c.products))])
}

func CollectionURL(color string) string {
	return "/collection?" + Query(domain.Criteria{Colors: []string{color}}).Encode()
}

func matchesAny(haystacks []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
