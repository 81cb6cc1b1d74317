package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

// hyperlink wraps text in OSC 8 escape sequences for clickable terminal
// links, falling back to plain text on terminals that don't support it.
func hyperlink(url, text string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.SetHyperlink("")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the structure of a WAD file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, w, err := openWad(true)
		if err != nil {
			return err
		}
		defer ensureClosed(file)

		absPath, err := filepath.Abs(wadPath)
		if err != nil {
			absPath = wadPath
		}
		fmt.Printf("File: %s\n", hyperlink("file://"+absPath, wadPath))

		fmt.Printf("Kind: %d\n", w.Kind)
		fmt.Printf("Certificate chain size: %d bytes\n", w.CertificateChainSize)
		fmt.Printf("Ticket size: %d bytes\n", w.TicketSize)
		fmt.Printf("Title metadata size: %d bytes\n", w.TitleMetadataSize)
		fmt.Printf("Content size: %d bytes\n", w.ContentSize)
		fmt.Printf("Footer size: %d bytes\n", w.FooterSize)

		chain, err := w.CertificateChain(file)
		if err != nil {
			return fmt.Errorf("reading certificate chain: %w", err)
		}
		fmt.Printf("\nCertificate chain: %d certificate(s)\n", len(chain.Certificates))

		ticket, err := w.Ticket(file)
		if err != nil {
			return fmt.Errorf("reading ticket: %w", err)
		}
		fmt.Printf("\nTicket ID:     %d\n", ticket.TicketID)
		fmt.Printf("Title ID:      %s\n", ticket.TitleID)
		fmt.Printf("Title version: %d\n", ticket.TitleVersion)

		titleMetadata, err := w.TitleMetadata(file)
		if err != nil {
			return fmt.Errorf("reading title metadata: %w", err)
		}
		fmt.Printf("\nTitle metadata title ID: %s\n", titleMetadata.TitleID)
		fmt.Printf("Title metadata version:  %d\n", titleMetadata.TitleVersion)
		fmt.Printf("Group ID:                %d\n", titleMetadata.GroupID)
		fmt.Printf("Boot content index:      %d\n", titleMetadata.BootContentIndex)

		fmt.Printf("\nContent entries:\n")
		for position, entry := range titleMetadata.ContentChunkEntries {
			fmt.Printf("  [%d] id=0x%08x index=%d size=%d\n", position, entry.ID, entry.Index, entry.Size)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
