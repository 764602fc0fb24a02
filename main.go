// ledseq runs LED sequences on a GPIO-connected light bar from a password
// protected terminal menu.
package main

import (
	"os"

	"github.com/BitPonyLLC/ledseq/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
