package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"agribot/internal/engine"
)

var chatName string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with AgriBot in the terminal",
	Long:  `Starts an interactive terminal session against the local conversational pipeline. No server or database is needed; the conversation lives until you quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		eng, err := newEngine(nil, log)
		if err != nil {
			return err
		}

		userID := uuid.New().String()
		fmt.Println("AgriBot interactive chat. Type 'exit' or press Ctrl+C to quit.")
		fmt.Println()

		for {
			p := promptui.Prompt{Label: "You"}
			line, err := p.Run()
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					fmt.Println("Goodbye!")
					return nil
				}
				return fmt.Errorf("reading input: %w", err)
			}

			if strings.EqualFold(strings.TrimSpace(line), "exit") {
				fmt.Println("Goodbye!")
				return nil
			}

			result, err := eng.ProcessTurn(context.Background(), engine.TurnRequest{
				UserID: userID,
				Text:   line,
				Name:   chatName,
				Region: cfg.DefaultRegion,
			})
			if errors.Is(err, engine.ErrEmptyText) {
				continue
			}
			if err != nil {
				return fmt.Errorf("processing message: %w", err)
			}

			fmt.Printf("\n%s\n\n", result.Response)
			if len(result.FollowUps) > 0 {
				fmt.Println("You could ask:")
				for _, f := range result.FollowUps {
					fmt.Printf("  - %s\n", f)
				}
				fmt.Println()
			}
		}
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatName, "name", "", "your display name")
	rootCmd.AddCommand(chatCmd)
}
