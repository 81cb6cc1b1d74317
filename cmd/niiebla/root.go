package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zelzip/niiebla-go/lib/niiebla/wad"
)

var wadPath string

var rootCmd = &cobra.Command{
	Use:   "niiebla",
	Short: "Inspect, edit and export Nintendo Installable WAD files",
	Long: `niiebla reads, edits and exports the Installable WAD container format used
to distribute titles for the Wii, Wii U, DSi and 3DS, and calculates the
numeric master key used to reset a system's parental control PIN.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&wadPath, "file", "f", "", "path to the WAD file")
}

func requireWadPath() error {
	if wadPath == "" {
		return &MissingFlagError{Flag: "--file"}
	}
	return nil
}

// MissingFlagError is returned when a required persistent flag was not set.
type MissingFlagError struct{ Flag string }

func (e *MissingFlagError) Error() string { return "missing required flag: " + e.Flag }

func openWad(readOnly bool) (*os.File, *wad.InstallableWad, error) {
	if err := requireWadPath(); err != nil {
		return nil, nil, err
	}

	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}

	file, err := os.OpenFile(wadPath, flag, 0o644)
	if err != nil {
		return nil, nil, err
	}

	w, err := wad.NewInstallable(file)
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	return file, w, nil
}

// ensureClosed is a small helper to keep defer chains readable at call
// sites that open a file and then may return early on error.
func ensureClosed(c io.Closer) {
	_ = c.Close()
}
