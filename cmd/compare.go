package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/MiLista/internal/cart"
	"github.com/Rorical/MiLista/internal/lookup"
	"github.com/Rorical/MiLista/internal/models"
)

var compareCmd = &cobra.Command{
	Use:   "compare [code...]",
	Short: "Compare prices across stores",
	Long: `Without codes, opens the compare screen: every scanned code shows each
store's offer with the lowest price highlighted. With codes, prints the
comparison and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runTUI(models.ModeCompare)
		}
		if err := applyRunFlags(); err != nil {
			return err
		}

		codes, err := parseCodes(args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, err := newLookupClient().CompareMany(ctx, codes)
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(results))
		offers := make(map[string]map[string]models.Product, len(results))
		for _, r := range results {
			keys = append(keys, r.Code.String())
			if r.Err != nil {
				logger.Warn("comparison failed", zap.String("code", r.Code.String()), zap.Error(r.Err))
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Code, r.Err)
				continue
			}
			offers[r.Code.String()] = r.Stores
		}

		stores := lookup.CompareStores()
		fmt.Println(comparisonTable(cart.Compare(keys, offers, stores), stores))
		return nil
	},
}
