// Package main provides the orthobot CLI application.
// orthobot reconciles the OMA ortholog export against Wikidata and
// writes the missing ortholog statements.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
