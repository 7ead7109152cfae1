// Command strata compiles SQL definition files into Go source.
package main

import (
	"github.com/syssam/strata/internal/cli"
)

func main() {
	cli.Execute()
}
