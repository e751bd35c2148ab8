// Package main is the kdbexpr command.
package main

import (
	"os"

	"github.com/KDE/kdb-sub002/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
