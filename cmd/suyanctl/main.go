// suyanctl is a diagnostic and control CLI for suyand: it exercises
// the same named-pipe IPC transport the TSF client shim uses, plus
// read-only inspection of the clipboard history database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
