package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nikolayk812/vespa-storefront/internal/catalog"
	"github.com/nikolayk812/vespa-storefront/internal/domain"
	"github.com/spf13/cobra"
)

var (
	productsSearch   string
	productsColors   []string
	productsEngines  []string
	productsFeatures []string
	productsMinPrice int64
	productsMaxPrice int64
	productsJSON     bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products matching the given filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		criteria := domain.Criteria{
			Search:   productsSearch,
			Colors:   productsColors,
			Engines:  productsEngines,
			Features: productsFeatures,
		}
		if cmd.Flags().Changed("min-price") {
			criteria.MinPrice = &productsMinPrice
		}
		if cmd.Flags().Changed("max-price") {
			criteria.MaxPrice = &productsMaxPrice
		}

		products := cat.Filter(criteria)

		if productsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(products)
		}

		if len(products) == 0 {
			fmt.Println("No products match the filters.")
			return nil
		}

		for _, p := range products {
			fmt.Printf("%-36s %-22s %-28s %s\n", p.Slug, p.Name, p.Color, p.Price)
		}
		fmt.Printf("\n%d of %d products\n", len(products), len(cat.Products()))
		if !criteria.IsZero() {
			fmt.Printf("Browse: /collection?%s\n", catalog.Query(criteria).Encode())
		}
		return nil
	},
}

func init() {
	productsCmd.Flags().StringVar(&productsSearch, "search", "", "case-insensitive search over name, subtitle and description")
	productsCmd.Flags().StringSliceVar(&productsColors, "colors", nil, "colors to include")
	productsCmd.Flags().StringSliceVar(&productsEngines, "engines", nil, "engines to include")
	productsCmd.Flags().StringSliceVar(&productsFeatures, "features", nil, "extras every product must have")
	productsCmd.Flags().Int64Var(&productsMinPrice, "min-price", 0, "minimum price in TND")
	productsCmd.Flags().Int64Var(&productsMaxPrice, "max-price", 0, "maximum price in TND")
	productsCmd.Flags().BoolVar(&productsJSON, "json", false, "print products as JSON")
	rootCmd.AddCommand(productsCmd)
}
