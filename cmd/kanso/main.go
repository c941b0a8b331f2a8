// Command kanso manages the wellness state from the terminal. It opens the
// same store as the HTTP bridge.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kanso:", err)
		os.Exit(1)
	}
}
