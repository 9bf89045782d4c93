// Command uicore runs retained UI components headlessly.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/uicore/cmd/uicore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
