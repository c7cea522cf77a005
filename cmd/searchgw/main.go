// Package main provides the entry point for the searchgw MCP server.
package main

import (
	"os"

	"github.com/solr-hybrid/searchgw/cmd/searchgw/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
