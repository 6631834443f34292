package domain

const (
	SpecEngine = "Moteur"
	SpecExtras = "Extras"
)

type Spec struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

type Product struct {
	Slug        string   `json:"slug" yaml:"slug"`
	Name        string   `json:"name" yaml:"name"`
	Subtitle    string   `json:"subtitle" yaml:"subtitle"`
	Color       string   `json:"color" yaml:"color"`
	Description string   `json:"description" yaml:"description"`
	Price       Money    `json:"price" yaml:"price"`
	Specs       []Spec   `json:"specs" yaml:"specs"`
	Images      []string `json:"images" yaml:"images"`
}

// SpecValue returns the value of the first spec with the given label.
func (p Product) SpecValue(label string) (string, bool) {
	for _, s := range p.Specs {
		if s.Label == label {
			return s.Value, true
		}
	}
	return "", false
}

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type Criteria struct {
	Search   string
	Colors   []string
	Engines  []string
	Features []string
	MinPrice *int64
	MaxPrice *int64
}

// IsZero reports whether no filter dimension is set.
func (c Criteria) IsZero() bool {
	return c.Search == "" &&
		len(c.Colors) == 0 &&
		len(c.Engines) == 0 &&
		len(c.Features) == 0 &&
		c.MinPrice == nil &&
		c.MaxPrice == nil
}
