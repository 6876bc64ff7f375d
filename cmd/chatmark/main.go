package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/chatmark/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chatmark:", err)
		os.Exit(1)
	}
}
