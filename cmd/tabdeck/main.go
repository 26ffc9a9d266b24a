// Command tabdeck is the command-line host for the tab session engine.
package main

import "github.com/strayware/tabdeck/internal/cli"

func main() {
	cli.Execute()
}
