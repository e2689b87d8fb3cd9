// main is the entry point for the gitlocalstats CLI.
package main

import (
	"github.com/huangsam/gitlocalstats/cmd"
	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	iocache.CloseCaching()
	if err != nil {
		contract.LogFatal("gitlocalstats failed", err)
	}
}
