package main

import (
	"os"

	"github.com/GoUserManagement/UserManagement/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
