package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"suyan/internal/ipc"
)

var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Send SHUTDOWN to suyand; it acknowledges and closes this connection but keeps running",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dialClient()
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer client.Close()

		resp, _, err := client.Call(ipc.Request{Cmd: ipc.CmdShutdown})
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if resp.ResultCode != ipc.ResultOK {
			return fmt.Errorf("suyand returned %v", resp.ResultCode)
		}
		fmt.Println("shutdown acknowledged")
		return nil
	},
}
