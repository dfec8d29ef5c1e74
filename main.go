// Package main is the entry point of lumina.
package main

import (
	"github.com/lumina-cli/lumina/cmd"
	"github.com/lumina-cli/lumina/config"
	"github.com/lumina-cli/lumina/internal/cache"
	"github.com/lumina-cli/lumina/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
