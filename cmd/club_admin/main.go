package main

import (
	"os"

	_ "time/tzdata"

	"github.com/SscSPs/club_finance_app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
