// =============================================================================
// nodeidgen - Main Entry Point
// =============================================================================
//
// nodeidgen turns the OPC UA well-known node id table (NodeIds.csv) into the
// C++ ObjectID enumeration used by the server and client libraries.
//
// USAGE:
//   nodeidgen generate > ObjectIds.h  - Generate the enum from ./NodeIds.csv
//   nodeidgen validate                - Check the table without generating
//   nodeidgen version                 - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : Cobra command definitions
//   - internal/  : table readers, validation, enum rendering, the generator
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/nodeidgen/cmd"
)

// main hands control to the Cobra command tree.
func main() {
	cmd.Execute()
}
