// Package main is the djecho entry point.
package main

import (
	"github.com/djecho/djecho/cmd"
	"github.com/djecho/djecho/config"
	"github.com/djecho/djecho/internal/cache"
	"github.com/djecho/djecho/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
