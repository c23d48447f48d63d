package cmd

import (
	"fmt"
	"net/url"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/MiLista/internal/config"
	"github.com/Rorical/MiLista/internal/lookup"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles",
	Long:  `Manage the price API deployments MiLista talks to, such as production and a local development server.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Base URL: %s\n", profile.BaseURL)
			if profile.Store != "" {
				fmt.Printf("    Store: %s\n", profile.Store)
			}
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName := cfg.ActiveProfile
		if len(args) > 0 {
			profileName = args[0]
		}
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			return fmt.Errorf("profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Base URL: %s\n", profile.BaseURL)
		store := profile.Store
		if store == "" {
			store = config.DefaultStore + " (default)"
		}
		fmt.Printf("Store: %s\n", store)
		return nil
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var profileName string
		var err error
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			profileName, err = prompt.Run()
			if err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			return fmt.Errorf("profile '%s' already exists", profileName)
		}

		baseURLPrompt := promptui.Prompt{
			Label:    "Base URL",
			Default:  config.DevelopmentURL,
			Validate: validateBaseURL,
		}
		baseURL, err := baseURLPrompt.Run()
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}

		stores := lookup.Stores()
		storePrompt := promptui.Select{
			Label: "Default store",
			Items: storeNames(stores),
		}
		i, _, err := storePrompt.Run()
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}

		cfg.Profiles[profileName] = config.Profile{BaseURL: baseURL, Store: stores[i].ID}
		if err := cfg.Save(""); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
		return nil
	},
}

var useProfileCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName, err := profileArg(args, "Select profile to switch to")
		if err != nil {
			return err
		}
		if err := switchProfile(profileName); err != nil {
			return err
		}
		fmt.Printf("Switched to profile '%s'\n", profileName)
		return nil
	},
}

var removeProfileCmd = &cobra.Command{
	Use:   "remove [profile-name]",
	Short: "Remove a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName, err := profileArg(args, "Select profile to remove")
		if err != nil {
			return err
		}
		if _, exists := cfg.Profiles[profileName]; !exists {
			return fmt.Errorf("profile '%s' does not exist", profileName)
		}
		if len(cfg.Profiles) == 1 {
			return fmt.Errorf("cannot remove the only profile")
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Remove profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Removal cancelled")
			return nil
		}

		delete(cfg.Profiles, profileName)
		if cfg.ActiveProfile == profileName {
			if err := cfg.UseProfile(cfg.ProfileNames()[0]); err != nil {
				return err
			}
		}
		if err := cfg.Save(""); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Profile '%s' removed (active: %s)\n", profileName, cfg.ActiveProfile)
		return nil
	},
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(useProfileCmd)
	profileCmd.AddCommand(removeProfileCmd)
}

// profileArg takes the profile from args or asks for one.
func profileArg(args []string, label string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	names := cfg.ProfileNames()
	if len(names) == 0 {
		return "", fmt.Errorf("no profiles available")
	}
	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection failed: %w", err)
	}
	return name, nil
}

func switchProfile(name string) error {
	if err := cfg.UseProfile(name); err != nil {
		return err
	}
	if err := cfg.Save(""); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func validateBaseURL(input string) error {
	u, err := url.Parse(input)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter an absolute URL such as %s", config.DevelopmentURL)
	}
	return nil
}

func storeNames(stores []lookup.Store) []string {
	names := make([]string, 0, len(stores))
	for _, s := range stores {
		names = append(names, s.Name)
	}
	return names
}
