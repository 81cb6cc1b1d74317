// Command niiebla inspects, edits and exports content from Nintendo
// Installable WAD files, and calculates parental control master keys.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
