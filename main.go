package main

import (
	"os"

	"github.com/marvin-wtt/BalloonOrganizer/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
