package main

import (
	"os"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/app"
)

func main() {
	os.Exit(app.Execute(os.Args[1:]))
}
