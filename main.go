// main is the entry point for the spacecap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/spacecap/cmd"
	"github.com/huangsam/spacecap/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		_, _ = fmt.Fprintln(os.Stderr, "⚠️ ", stopErr)
	}
	iocache.CloseCaching()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
