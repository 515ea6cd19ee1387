// vi-dojo runs a simulated vim editor or tmux multiplexer in the terminal for keystroke practice
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/vi-dojo/host"
)

func main() {
	// Restores the terminal if a panic reaches main; goroutines use host.Go
	defer func() {
		if r := recover(); r != nil {
			host.HandleCrash(r)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vi-dojo:", err)
		os.Exit(1)
	}
}
