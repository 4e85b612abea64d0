// =============================================================================
// XML Contract Corrector - Main Entry Point
// =============================================================================
//
// This is the main entry point for the XML Contract Corrector CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   xmlcorrect process       - Correct XML documents in the input directory
//   xmlcorrect check         - Validate the reference table without processing
//   xmlcorrect version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core correction engine (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/younessemlali/xml-contract-corrector/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
