package main

import (
	"fmt"
	"os"

	"github.com/tomdyson/go-amee/cmd"
	"github.com/tomdyson/go-amee/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
