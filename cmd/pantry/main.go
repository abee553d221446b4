// Command pantry tracks a food pantry's inventory, recipients, and
// distributions.
package main

import (
	"os"

	"github.com/mesh-intelligence/pantry/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
