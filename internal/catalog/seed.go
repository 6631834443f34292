package catalog

import "github.com/nikolayk812/vespa-storefront/internal/domain"

var seedProducts = []domain.Product{
	{
		Slug:        "vespa-sprint-s-125-green-jungle",
		Name:        "Vespa Sprint S 125",
		Subtitle:    "Green Jungle Edition",
		Color:       "Vert Jungle & Blanc Crème",
		Description: "Version sportive avec finitions satinées, jantes noires et détails lime pour une présence ultra moderne en ville.",
		Price:       domain.NewMoney(16900),
		Specs: []domain.Spec{
			{Label: domain.SpecEngine, Value: "125 cc i-get"},
			{Label: "Finition", Value: "Green Jungle + inserts blancs"},
			{Label: "Freinage", Value: "ABS avant, disque 200 mm"},
			{Label: domain.SpecExtras, Value: "Pare-brise sport, sellerie premium"},
		},
		Images: []string{"/images/green.jpg", "/images/green1.png", "/images/green2.png", "/images/green3.png", "/images/green4.png"},
	},
	{
		Slug:        "vespa-primavera-125-bianco",
		Name:        "Vespa Primavera 125",
		Subtitle:    "Bianco Classico",
		Color:       "Blanc perlé",
		Description: "L’icône intemporelle Vespa avec touches chromées, idéale pour les balades méditerranéennes et les trajets quotidiens.",
		Price:       domain.NewMoney(15200),
		Specs: []domain.Spec{
			{Label: domain.SpecEngine, Value: "125 cc i-get"},
			{Label: "Finition", Value: "Bianco + chrome"},
			{Label: "Freinage", Value: "ABS avant, disque 200 mm"},
			{Label: domain.SpecExtras, Value: "Rack arrière, selle bicolore"},
		},
		Images: []string{"/images/white.jpg", "/images/white1.jpeg", "/images/white2.jpeg", "/images/white3.jpeg"},
	},
}

// Default returns the built-in showroom catalog.
func Default() *Catalog {
	c, err := New(seedProducts)
	if err != nil {
		panic(err)
	}
	return c
}
