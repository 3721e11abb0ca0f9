package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ChaleeCh/support-tickets/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ticketdesk",
		Short: "Ticketdesk - credit management query tracking",
		Long:  `Ticketdesk is an internal query tracking service: submit tickets, upload spreadsheet batches, edit the live table, and read aggregate statistics.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
