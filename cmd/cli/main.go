package main

import (
	"github.com/crucial707/sharebnb/cmd/cli/root"

	// Register subcommands on the root command.
	_ "github.com/crucial707/sharebnb/cmd/cli/bookings"
	_ "github.com/crucial707/sharebnb/cmd/cli/listings"
	_ "github.com/crucial707/sharebnb/cmd/cli/users"
)

func main() {
	root.Execute()
}
