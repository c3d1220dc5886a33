// Command stochgraph solves reachability and reward objectives on explicit
// graphs stored in the graphio JSON format.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := Root.Execute(); err != nil {
		log.Error().Err(err).Msg("stochgraph failed")
		os.Exit(1)
	}
}
