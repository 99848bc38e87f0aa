package main

import (
	"os"

	"github.com/kochwerk/kochwerk/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
