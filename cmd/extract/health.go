package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"matterdesk/internal/ollama"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the Ollama server and list installed models",
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		client := ollama.NewClient(&cfg.Ollama)
		if !client.IsHealthy(ctx) {
			return eris.Errorf("ollama at %s is not reachable", cfg.Ollama.BaseURL)
		}

		models, err := client.ListModels(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ollama at %s is healthy\n", cfg.Ollama.BaseURL)
		found := false
		for _, m := range models {
			marker := " "
			if m.Name == client.DefaultModel() {
				marker = "*"
				found = true
			}
			fmt.Fprintf(out, "%s %-32s %10d bytes  %s\n", marker, m.Name, m.Size, m.ModifiedAt.Format(time.RFC3339))
		}
		if !found {
			fmt.Fprintf(out, "warning: default model %q is not installed\n", client.DefaultModel())
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().Duration("timeout", 10*time.Second, "health check timeout")
	rootCmd.AddCommand(healthCmd)
}
