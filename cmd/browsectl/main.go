// Command browsectl browses the plugin catalog through a plugin-browser
// proxy and manages its cache.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"plugin-browser/cmd/browsectl/commands"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	commands.SetVersion(version)
	if err := commands.Execute(ctx); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
