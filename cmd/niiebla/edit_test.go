package main

import (
	"testing"

	"github.com/zelzip/niiebla-go/lib/niiebla"
)

func resetEditSelectorFlags() {
	editWhere = ""
	editID = 0
	editIndex = 0
	editUseIndex = false
}

func testTitleMetadataForEdit() *niiebla.TitleMetadata {
	return &niiebla.TitleMetadata{
		ContentChunkEntries: []niiebla.TitleMetadataContentEntry{
			{ID: 10, Index: 0, Kind: niiebla.TitleMetadataContentEntryKindNormal, Size: 1024},
			{ID: 20, Index: 1, Kind: niiebla.TitleMetadataContentEntryKindDlc, Size: 2048},
		},
	}
}

func TestSelectEditedContentByID(t *testing.T) {
	resetEditSelectorFlags()
	defer resetEditSelectorFlags()

	titleMetadata := testTitleMetadataForEdit()
	editID = 20

	selector, err := selectEditedContent(titleMetadata)
	if err != nil {
		t.Fatalf("selectEditedContent() error = %v", err)
	}
	entry, err := selector.ContentEntry(titleMetadata)
	if err != nil {
		t.Fatalf("ContentEntry() error = %v", err)
	}
	if entry.ID != 20 {
		t.Errorf("selected entry ID = %d, want 20", entry.ID)
	}
}

func TestSelectEditedContentByWhere(t *testing.T) {
	resetEditSelectorFlags()
	defer resetEditSelectorFlags()

	titleMetadata := testTitleMetadataForEdit()
	editWhere = `kind == "dlc"`

	selector, err := selectEditedContent(titleMetadata)
	if err != nil {
		t.Fatalf("selectEditedContent() error = %v", err)
	}
	entry, err := selector.ContentEntry(titleMetadata)
	if err != nil {
		t.Fatalf("ContentEntry() error = %v", err)
	}
	if entry.ID != 20 {
		t.Errorf("selected entry ID = %d, want 20", entry.ID)
	}
}

func TestSelectEditedContentAmbiguous(t *testing.T) {
	resetEditSelectorFlags()
	defer resetEditSelectorFlags()

	titleMetadata := testTitleMetadataForEdit()
	editWhere = `kind == "dlc"`
	editID = 20

	if _, err := selectEditedContent(titleMetadata); err == nil {
		t.Fatal("selectEditedContent() expected an error when --where and --id are both set")
	} else if _, ok := err.(*AmbiguousSelectorError); !ok {
		t.Fatalf("selectEditedContent() error = %v, want *AmbiguousSelectorError", err)
	}
}

func TestSelectEditedContentNoMatch(t *testing.T) {
	resetEditSelectorFlags()
	defer resetEditSelectorFlags()

	titleMetadata := testTitleMetadataForEdit()
	editWhere = `kind == "shared"`

	if _, err := selectEditedContent(titleMetadata); err == nil {
		t.Fatal("selectEditedContent() expected an error when --where matches nothing")
	} else if _, ok := err.(*NoContentMatchedError); !ok {
		t.Fatalf("selectEditedContent() error = %v, want *NoContentMatchedError", err)
	}
}
