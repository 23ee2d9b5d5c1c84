// Command autoeq looks up AutoEq headphone corrections from the terminal.
//
// Usage:
//
//	autoeq search sennheiser
//	autoeq get "Sennheiser HD 600" --output json
//	autoeq batch "Sennheiser HD 600" "Moondrop Aria"
//	autoeq mirror            # copies catalog documents into the S3/MinIO mirror
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
