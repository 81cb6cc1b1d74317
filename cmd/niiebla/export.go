package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz/lzma"

	"github.com/zelzip/niiebla-go/lib/niiebla"
)

var (
	exportOutputPath string
	exportCompress   string
	exportContentID  uint32
	exportIndex      uint16
	exportUseIndex   bool
)

// UnknownCompressionCodecError is returned when --compress names a codec
// this command does not recognize.
type UnknownCompressionCodecError struct{ Codec string }

func (e *UnknownCompressionCodecError) Error() string {
	return fmt.Sprintf("unknown compression codec: %q (want \"zstd\" or \"lzma\")", e.Codec)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Decrypt a content entry to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, w, err := openWad(true)
		if err != nil {
			return err
		}
		defer ensureClosed(file)

		ticket, err := w.Ticket(file)
		if err != nil {
			return fmt.Errorf("reading ticket: %w", err)
		}
		titleMetadata, err := w.TitleMetadata(file)
		if err != nil {
			return fmt.Errorf("reading title metadata: %w", err)
		}

		var selector niiebla.ContentSelector
		if exportUseIndex {
			selector = titleMetadata.SelectWithIndex(exportIndex)
		} else {
			selector = titleMetadata.SelectWithId(exportContentID)
		}

		contentStream, err := w.DecryptedContentView(file, ticket, titleMetadata, niiebla.CryptographicMethodWii, selector)
		if err != nil {
			return fmt.Errorf("opening content: %w", err)
		}

		out, err := os.Create(exportOutputPath)
		if err != nil {
			return err
		}
		defer ensureClosed(out)

		var dst io.Writer = out
		var closer io.Closer

		switch exportCompress {
		case "":
			// no compression

		case "zstd":
			encoder, err := zstd.NewWriter(out)
			if err != nil {
				return err
			}
			dst = encoder
			closer = encoder

		case "lzma":
			encoder, err := lzma.NewWriter(out)
			if err != nil {
				return err
			}
			dst = encoder
			closer = encoder

		default:
			return &UnknownCompressionCodecError{Codec: exportCompress}
		}

		if _, err := io.Copy(dst, contentStream); err != nil {
			return fmt.Errorf("writing content: %w", err)
		}
		if closer != nil {
			if err := closer.Close(); err != nil {
				return err
			}
		}

		fmt.Printf("Exported to %s\n", exportOutputPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "output file path")
	exportCmd.Flags().StringVar(&exportCompress, "compress", "", `compress the exported content ("zstd" or "lzma")`)
	exportCmd.Flags().Uint32Var(&exportContentID, "id", 0, "content entry ID to export")
	exportCmd.Flags().Uint16Var(&exportIndex, "index", 0, "content entry index to export, instead of --id")
	exportCmd.Flags().BoolVar(&exportUseIndex, "by-index", false, "select the content by --index instead of --id")
	_ = exportCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(exportCmd)
}
