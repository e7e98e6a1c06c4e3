package main

import (
	"os"

	"basket-pricer-go/cmd/basketpricer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
