package main

import (
	"log"

	"inventory/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("inventory: %v", err)
	}
}
