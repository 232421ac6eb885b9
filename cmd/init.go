package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"agribot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file",
	Long:  `Interactively creates an .agribot.yml configuration file in the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists", cfgFile)
		}

		cfg := config.DefaultConfig()

		name, err := (&promptui.Prompt{
			Label:   "Bot display name",
			Default: cfg.BotName,
		}).Run()
		if err != nil {
			return initErr(err)
		}
		cfg.BotName = name

		_, region, err := (&promptui.Select{
			Label: "Default region",
			Items: []string{
				"centre", "littoral", "west", "northwest", "southwest",
				"east", "north", "far_north", "adamawa", "south",
			},
		}).Run()
		if err != nil {
			return initErr(err)
		}
		cfg.DefaultRegion = region

		if err := cfg.Save(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfgFile)
		return nil
	},
}

// initErr maps a Ctrl+C during the wizard to a clean exit.
func initErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		return nil
	}
	return fmt.Errorf("prompt failed: %w", err)
}

func init() {
	rootCmd.AddCommand(initCmd)
}
