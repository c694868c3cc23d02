package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Binaergewitter/datefinder/internal/hooks"
	"github.com/Binaergewitter/datefinder/internal/ical"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the iCalendar feed file for all confirmed dates",
	Run: func(cmd *cobra.Command, args []string) {
		renderer := ical.NewRenderer(cfg.CalendarName, cfg.Location())
		export := hooks.NewICalExportHook(provider, renderer, cfg.ICalExportPath)

		if err := export.Export(context.Background()); err != nil {
			slog.Error("Export failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Calendar written to %s\n", cfg.ICalExportPath)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
