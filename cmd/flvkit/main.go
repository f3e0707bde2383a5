// If you are AI: This is the main entrypoint for the flvkit command.
// Subcommands inspect, remux, index and serve FLV files.

package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

// main runs the command tree; failures exit with the container result code.
func main() {
	cli.MainContext(context.Background(), MainCommand())
}
