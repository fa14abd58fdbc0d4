package main

import (
	"fmt"
	"os"

	_ "github.com/brimdata/vcl/cmd/vcl/format"
	_ "github.com/brimdata/vcl/cmd/vcl/gen"
	_ "github.com/brimdata/vcl/cmd/vcl/instrument"
	_ "github.com/brimdata/vcl/cmd/vcl/parse"
	_ "github.com/brimdata/vcl/cmd/vcl/repl"
	"github.com/brimdata/vcl/cmd/vcl/root"
)

func main() {
	if err := root.Vcl.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
