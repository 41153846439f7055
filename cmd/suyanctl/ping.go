package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"suyan/internal/ipc"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that suyand is running and responding",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dialClient()
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer client.Close()

		start := time.Now()
		resp, _, err := client.Call(ipc.Request{Cmd: ipc.CmdEcho})
		if err != nil {
			return fmt.Errorf("echo: %w", err)
		}
		elapsed := time.Since(start)

		if resp.ResultCode != ipc.ResultOK {
			return fmt.Errorf("suyand returned %v", resp.ResultCode)
		}
		fmt.Printf("suyand is alive (%s)\n", elapsed)
		return nil
	},
}
