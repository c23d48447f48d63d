package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/MiLista/internal/lookup"
)

var priceCmd = &cobra.Command{
	Use:   "price code...",
	Short: "Look up prices at one store",
	Long:  `Prints the name and price of each code at the selected store (--store or the active profile's).`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyRunFlags(); err != nil {
			return err
		}
		store, ok := lookup.FindStore(cfg.GetStore())
		if !ok {
			return fmt.Errorf("unknown store %q", cfg.GetStore())
		}

		codes, err := parseCodes(args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, err := newLookupClient().LookupMany(ctx, codes, store.ID)
		if err != nil {
			return err
		}
		for _, r := range results {
			if r.Err != nil {
				logger.Warn("lookup failed", zap.String("code", r.Code.String()), zapStore(store), zap.Error(r.Err))
			}
		}

		fmt.Println(priceTable(store, results))
		return nil
	},
}

func zapStore(s lookup.Store) zap.Field {
	return zap.String("store", s.ID)
}
