package display

import (
	"fmt"
	"os"

	"github.com/quasarlab/balpipe/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ____        _ ____  _
| __ )  __ _| |  _ \(_)_ __   ___
|  _ \ / _`+"`"+` | | |_) | | '_ \ / _ \
| |_) | (_| | |  __/| | |_) |  __/
|____/ \__,_|_|_|   |_| .__/ \___|
                      |_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
