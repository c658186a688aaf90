// Package main is the entry point for the triage CLI.
package main

import (
	"os"

	"github.com/huangsam/triage/cmd"
	"github.com/huangsam/triage/internal/contract"
	"github.com/huangsam/triage/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	if err != nil {
		contract.LogWarn("Command failed", err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
