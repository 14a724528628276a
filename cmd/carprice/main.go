package main

import (
	"github.com/YuminosukeSato/carprice/cmd/carprice/cmd"
)

func main() {
	cmd.Execute()
}
