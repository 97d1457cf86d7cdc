package main

import (
	"os"

	"github.com/Aashish23092/gst-bank-api/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
