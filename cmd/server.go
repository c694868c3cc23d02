package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "github.com/Binaergewitter/datefinder/internal"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the datefinder server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := app.New(cfg, provider)
		if err := a.ServerMain(ctx); err != nil {
			slog.Error("Server exited", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
