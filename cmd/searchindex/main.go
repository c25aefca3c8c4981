// Command searchindex builds and maintains the client-side search index of a
// documentation site.
package main

import (
	"os"

	"github.com/Adithya-Monish-Kumar-K/searchindex/cmd/searchindex/cmd"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(apperrors.ExitCode(err))
	}
}
