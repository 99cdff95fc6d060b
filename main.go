// file: main.go
// version: 1.0.0
// guid: 0f1a2b3c-4d5e-4f6a-7b8c-9d0e1f2a3b4c

package main

import (
	"fmt"
	"os"

	"github.com/Laiba-Aqib/Movie-streaming-platform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
