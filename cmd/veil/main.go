package main

import (
	"github.com/veilbrowser/veil/internal/cli/cmd"
)

// Build-time variables (set via ldflags).
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
