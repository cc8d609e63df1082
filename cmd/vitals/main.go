// Package main provides the vitals CLI.
package main

import (
	"github.com/mesh-intelligence/vitals/internal/cli"
)

func main() {
	cli.Execute()
}
