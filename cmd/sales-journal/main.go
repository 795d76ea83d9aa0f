// Package main is the entry point for the sales-journal CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/sales-journal/cmd/sales-journal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
