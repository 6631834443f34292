package cmd

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/vespa-storefront/internal/domain"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the filter values available in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		pr := cat.PriceRange()

		fmt.Printf("Colors:   %s\n", strings.Join(cat.Colors(), ", "))
		fmt.Printf("Engines:  %s\n", strings.Join(cat.Engines(), ", "))
		fmt.Printf("Features: %s\n", strings.Join(cat.Features(), ", "))
		fmt.Printf("Price:    %s - %s\n", domain.NewMoney(pr.Min), domain.NewMoney(pr.Max))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}
