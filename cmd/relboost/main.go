// SPDX-License-Identifier: MIT
//
// Command relboost is a thin CLI wrapper around package learner, present
// only so the module has a runnable entrypoint for manual smoke tests
// against Parquet files (spec §1 Non-goals: "CLI... the Pipeline shell" is
// an out-of-scope external collaborator). It stays a thin wrapper, never a
// component: every decision it makes is delegated to learner/ingest.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/relboost/cmd/relboost/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
