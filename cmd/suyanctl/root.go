package main

import (
	"github.com/spf13/cobra"

	"suyan/internal/ipc"
)

var version = "dev"

// rootCmd is the base command when suyanctl is invoked with no
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "suyanctl",
	Short: "Diagnostic and control CLI for suyand",
	Long: `suyanctl talks to a running suyand over the same named pipe
the TSF client shim uses, for diagnostics and manual testing, plus
read-only inspection of the clipboard history database.`,
}

func init() {
	rootCmd.AddCommand(pingCmd, shutdownCmd, clipboardCmd)
}

func dialClient() (*ipc.Client, error) {
	client := ipc.NewClient(ipc.DefaultClientConfig())
	if err := client.Connect(); err != nil {
		return nil, err
	}
	return client, nil
}
