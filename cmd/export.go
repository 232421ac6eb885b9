package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"agribot/internal/analytics"
	"agribot/internal/db"
	"agribot/internal/progress"
)

var (
	exportUser   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded conversations to JSON",
	Long:  `Dumps the persisted turn log to a JSON file, optionally filtered to a single user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dbPath := filepath.Join(cfg.DataDir, "agribot.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := analytics.NewStore(database)
		turns, err := store.ExportTurns(context.Background(), exportUser)
		if err != nil {
			return fmt.Errorf("exporting turns: %w", err)
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOutput, err)
		}
		defer f.Close()

		reporter := progress.NewReporter()
		reporter.Start(len(turns))

		if _, err := f.WriteString("[\n"); err != nil {
			return err
		}
		for i, t := range turns {
			data, err := json.MarshalIndent(t, "  ", "  ")
			if err != nil {
				return fmt.Errorf("encoding turn %d: %w", i, err)
			}
			sep := ",\n"
			if i == len(turns)-1 {
				sep = "\n"
			}
			if _, err := f.WriteString("  " + string(data) + sep); err != nil {
				return fmt.Errorf("writing turn %d: %w", i, err)
			}
			reporter.Update(i+1, t.UserID)
		}
		if _, err := f.WriteString("]\n"); err != nil {
			return err
		}
		reporter.Finish()

		fmt.Fprintf(os.Stderr, "Exported %d turns to %s\n", len(turns), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportUser, "user", "u", "", "export a single user's turns")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "agribot-export.json", "output file path")
	rootCmd.AddCommand(exportCmd)
}
