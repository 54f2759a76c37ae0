// afids-check validates AFIDs fiducial (.fcsv) files and prints their
// canonical form.
//
// Usage:
//
//	afids-check validate [--json] [-v] <files...>
//	afids-check show [--format json|yaml|cbor] [-o out] <file>
//	afids-check labels
//	afids-check shell
//
// Exit codes: 0 all files valid, 1 usage or I/O error, 2 validation failed.
package main

import (
	"os"

	"github.com/afids/afids-go/cmd/afids-check/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
