package colormatch

import (
	"math"

	"github.com/nikolayk812/vespa-storefront/internal/domain"
)

type Match struct {
	Product    *domain.Product `json:"product"`
	Similarity int             `json:"similarity"`
}

type Matcher struct {
	products []domain.Product
}

func NewMatcher(products []domain.Product) *Matcher {
	return &Matcher{products: products}
}

// FindMatchingProduct picks the product with the smallest color distance.
// Ties keep the earliest product. The product is only reported when the
// similarity is strictly above MatchThreshold.
func (m *Matcher) FindMatchingProduct(hex string) Match {
	var (
		best        *domain.Product
		minDistance = math.Inf(1)
	)

	for i := range m.products {
		productHex, ok := HexForColorName(m.products[i].Color)
		if !ok {
			continue
		}

		d := Distance(hex, productHex)
		if d < minDistance {
			minDistance = d
			best = &m.products[i]
		}
	}

	s := similarity(minDistance)

	match := Match{Similarity: int(math.Round(s))}
	if s > MatchThreshold && best != nil {
		p := *best
		match.Product = &p
	}

	return match
}
