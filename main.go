// main is the entry point for the branchlens CLI.
package main

import (
	"github.com/gamsoft/branchlens/cmd"
	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("branchlens failed", err)
	}
}
