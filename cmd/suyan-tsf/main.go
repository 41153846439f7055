//go:build windows

package main

import (
	"bufio"
	"fmt"
	"os"
	"unicode"
)

// main runs suyan-tsf as a standalone smoke-test harness: the real
// entry point into this code is the Shim type, driven by a COM host
// translating TSF callbacks, not this binary. Running it directly
// exercises the shim against a live suyand without needing one.
func main() {
	shim := NewShim(os.Getenv("SUYAND_PATH"))
	if err := shim.Activate(); err != nil {
		fmt.Fprintln(os.Stderr, "suyan-tsf:", err)
		os.Exit(1)
	}
	defer shim.Deactivate()

	fmt.Println("connected; type pinyin letters then Enter, Ctrl+D to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		for _, r := range line {
			// This harness only ever sees printable ASCII from stdin, so the
			// virtual-key code is just the uppercased rune: VK_A..VK_Z and
			// VK_0..VK_9 are defined to coincide with uppercase ASCII and
			// digit character codes.
			evt := KeyEvent{VK: uint32(unicode.ToUpper(r))}
			eaten, committed, err := shim.OnKeyDown(evt)
			if err != nil {
				fmt.Fprintln(os.Stderr, "key error:", err)
				continue
			}
			if committed != "" {
				fmt.Println("committed:", committed)
			}
			if !eaten {
				fmt.Printf("passthrough: %c\n", r)
			}
		}
		if committed, err := shim.Commit(); err == nil && committed != "" {
			fmt.Println("committed:", committed)
		}
	}
}
