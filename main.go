package main

import (
	"fmt"
	"os"

	"postlikes/service"
)

func main() {
	if err := service.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
