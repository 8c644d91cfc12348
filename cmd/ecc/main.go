package main

import (
	"os"

	"github.com/yuezheng2006/everything-claude-code/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
