package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/MiLista/internal/lookup"
	"github.com/Rorical/MiLista/internal/models"
)

var storesListOnly bool

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Pick a store, then start the list",
	Long:  `Choose the supermarket your list is priced at. The choice is saved to the active profile.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores := lookup.Stores()
		if storesListOnly {
			current := cfg.GetStore()
			for _, s := range stores {
				marker := ""
				if s.ID == current {
					marker = " (selected)"
				}
				fmt.Printf("  %-14s %s%s\n", s.ID, s.Name, marker)
			}
			return nil
		}

		prompt := promptui.Select{
			Label: "Select a store",
			Items: stores,
			Size:  len(stores),
			Templates: &promptui.SelectTemplates{
				Label:    "{{ . }}",
				Active:   "▸ {{ .Name | cyan }}",
				Inactive: "  {{ .Name }}",
				Selected: "✔ {{ .Name | green }}",
			},
		}
		i, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}

		cfg.SetStore(stores[i].ID)
		if err := cfg.Save(""); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logger.Info("store selected", zapStore(stores[i]))

		return runTUI(models.ModeList)
	},
}

func init() {
	storesCmd.Flags().BoolVarP(&storesListOnly, "list", "l", false, "only print the stores")
}
