// Package main is the entry point for the watchroom application.
package main

import (
	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/cmd"
	"github.com/watchroom-cli/watchroom/config"
	"github.com/watchroom-cli/watchroom/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
