package cmd

import (
	"fmt"

	"github.com/nikolayk812/vespa-storefront/internal/catalog"
	"github.com/nikolayk812/vespa-storefront/internal/colormatch"
	"github.com/spf13/cobra"
)

var matchColor string

var matchCmd = &cobra.Command{
	Use:     "match",
	Short:   "Find the catalog product closest to a hex color",
	Example: `  storefront match --color "#3d6c4a"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := colormatch.ParseHex(matchColor); !ok {
			return fmt.Errorf("invalid color %q: expected #rrggbb", matchColor)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		match := colormatch.NewMatcher(cat.Products()).FindMatchingProduct(matchColor)
		if match.Product == nil {
			fmt.Printf("No close match (similarity %d%%).\n", match.Similarity)
			return nil
		}

		fmt.Printf("%s (%s) %d%% similar\n", match.Product.Name, match.Product.Color, match.Similarity)
		fmt.Printf("Browse: %s\n", catalog.CollectionURL(match.Product.Color))
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchColor, "color", "", "hex color, e.g. #3d7c4a")
	matchCmd.MarkFlagRequired("color")
	rootCmd.AddCommand(matchCmd)
}
