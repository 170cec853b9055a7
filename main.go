// Command fileinfo prints a short report for every file under the given paths.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/fileinfo/internal/cli"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fileinfo: %v\n", err)
		os.Exit(1)
	}
}
