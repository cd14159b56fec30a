package main

import (
	"fmt"
	"os"

	"github.com/harrison/filekit/internal/cmd"
)

func main() {
	if err := cmd.NewMvtodateCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
