package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zelzip/niiebla-go/lib/niiebla"
	"github.com/zelzip/niiebla-go/lib/niiebla/wad"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Add, remove or replace content entries in a WAD",
}

var (
	editWhere       string
	editID          uint32
	editIndex       uint16
	editUseIndex    bool
	editNewID       uint32
	editSetNewID    bool
	editNewIndex    uint16
	editSetNewIndex bool
	editTrimIfFile  bool
	editInputPath   string
)

// AmbiguousSelectorError is returned when a command is given both a --where
// expression and a --id or --by-index selector.
type AmbiguousSelectorError struct{}

func (e *AmbiguousSelectorError) Error() string {
	return "specify exactly one of --where or --id/--index"
}

// NoContentMatchedError is returned when a --where expression matched no
// content entries.
type NoContentMatchedError struct{ Expression string }

func (e *NoContentMatchedError) Error() string {
	return fmt.Sprintf("no content entry matched: %q", e.Expression)
}

func selectEditedContent(titleMetadata *niiebla.TitleMetadata) (niiebla.ContentSelector, error) {
	if editWhere != "" && (editUseIndex || editID != 0) {
		return niiebla.ContentSelector{}, &AmbiguousSelectorError{}
	}

	if editWhere != "" {
		selectors, err := wad.SelectContentWhere(titleMetadata, editWhere)
		if err != nil {
			return niiebla.ContentSelector{}, err
		}
		if len(selectors) == 0 {
			return niiebla.ContentSelector{}, &NoContentMatchedError{Expression: editWhere}
		}
		return selectors[0], nil
	}

	if editUseIndex {
		return titleMetadata.SelectWithIndex(editIndex), nil
	}
	return titleMetadata.SelectWithId(editID), nil
}

func addSelectorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&editWhere, "where", "", "select content by an expr-lang expression instead of --id/--index")
	cmd.Flags().Uint32Var(&editID, "id", 0, "content entry ID to select")
	cmd.Flags().Uint16Var(&editIndex, "index", 0, "content entry index to select, instead of --id")
	cmd.Flags().BoolVar(&editUseIndex, "by-index", false, "select the content by --index instead of --id")
}

var editAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a new content entry, read from a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !editSetNewID || !editSetNewIndex {
			return &ModifyContentMissingFlagError{Flags: []string{"--new-id", "--new-index"}}
		}

		file, w, err := openWad(false)
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

		input, err := os.Open(editInputPath)
		if err != nil {
			return err
		}
		defer ensureClosed(input)

		builder := w.ModifyContent(file).
			SetCryptography(ticket, niiebla.CryptographicMethodWii).
			SetID(editNewID).
			SetIndex(editNewIndex).
			SetKind(niiebla.TitleMetadataContentEntryKindNormal)

		if err := builder.Add(input, titleMetadata); err != nil {
			return fmt.Errorf("adding content: %w", err)
		}

		fmt.Println("Content added")
		return nil
	},
}

var editRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a content entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, w, err := openWad(false)
		if err != nil {
			return err
		}
		defer ensureClosed(file)

		titleMetadata, err := w.TitleMetadata(file)
		if err != nil {
			return fmt.Errorf("reading title metadata: %w", err)
		}

		selector, err := selectEditedContent(titleMetadata)
		if err != nil {
			return err
		}

		builder := w.ModifyContent(file).TrimIfFile(editTrimIfFile)
		if err := builder.Remove(selector, titleMetadata); err != nil {
			return fmt.Errorf("removing content: %w", err)
		}

		fmt.Println("Content removed")
		return nil
	},
}

var editReplaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Overwrite a content entry's bytes, read from a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, w, err := openWad(false)
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

		selector, err := selectEditedContent(titleMetadata)
		if err != nil {
			return err
		}

		input, err := os.Open(editInputPath)
		if err != nil {
			return err
		}
		defer ensureClosed(input)

		builder := w.ModifyContent(file).SetCryptography(ticket, niiebla.CryptographicMethodWii)
		if editSetNewID {
			builder = builder.SetID(editNewID)
		}
		if editSetNewIndex {
			builder = builder.SetIndex(editNewIndex)
		}

		if err := builder.Replace(input, selector, titleMetadata); err != nil {
			return fmt.Errorf("replacing content: %w", err)
		}

		fmt.Println("Content replaced")
		return nil
	},
}

// ModifyContentMissingFlagError is returned when a command requires all of
// a set of flags and at least one of them was not given.
type ModifyContentMissingFlagError struct{ Flags []string }

func (e *ModifyContentMissingFlagError) Error() string {
	return fmt.Sprintf("missing required flag(s): %v", e.Flags)
}

func init() {
	editAddCmd.Flags().StringVar(&editInputPath, "input", "", "path to the file holding the new content's plaintext bytes")
	editAddCmd.Flags().Uint32Var(&editNewID, "new-id", 0, "ID for the new content entry")
	editAddCmd.Flags().Uint16Var(&editNewIndex, "new-index", 0, "index for the new content entry")
	_ = editAddCmd.MarkFlagRequired("input")
	editAddCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		editSetNewID = cmd.Flags().Changed("new-id")
		editSetNewIndex = cmd.Flags().Changed("new-index")
		return nil
	}

	addSelectorFlags(editRemoveCmd)
	editRemoveCmd.Flags().BoolVar(&editTrimIfFile, "trim", false, "truncate the backing file after removal, if supported")

	addSelectorFlags(editReplaceCmd)
	editReplaceCmd.Flags().StringVar(&editInputPath, "input", "", "path to the file holding the replacement plaintext bytes")
	editReplaceCmd.Flags().Uint32Var(&editNewID, "new-id", 0, "override the content entry's ID")
	editReplaceCmd.Flags().Uint16Var(&editNewIndex, "new-index", 0, "override the content entry's index")
	_ = editReplaceCmd.MarkFlagRequired("input")
	editReplaceCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		editSetNewID = cmd.Flags().Changed("new-id")
		editSetNewIndex = cmd.Flags().Changed("new-index")
		return nil
	}

	editCmd.AddCommand(editAddCmd, editRemoveCmd, editReplaceCmd)
	rootCmd.AddCommand(editCmd)
}
