package main

import (
	"os"

	"github.com/settings-admin/settings-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
