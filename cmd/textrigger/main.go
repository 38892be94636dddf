package main

import (
	"os"

	"github.com/rcliao/textrigger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
