package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "agribot",
	Short: "Conversational agricultural assistant for Cameroonian farmers",
	Long: `AgriBot answers farming questions in natural language: planting
procedures, disease diagnosis, fertilizer programs, pest control, and
seasonal planning for crops grown in Cameroon. It keeps per-user
conversation context so follow-up questions resolve against earlier
mentions.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".agribot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
