package main

import (
	"fmt"
	"os"

	"github.com/unified-data-studio/uds-tools/cmd/udsbuild/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
