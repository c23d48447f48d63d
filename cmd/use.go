package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Rorical/MiLista/internal/models"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the list",
	Long:  `Switch to the specified profile and immediately start the shopping list.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := switchProfile(args[0]); err != nil {
			return err
		}
		return runTUI(models.ModeList)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
