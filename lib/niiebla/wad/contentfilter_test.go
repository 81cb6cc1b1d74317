package wad

import (
	"testing"

	"github.com/zelzip/niiebla-go/lib/niiebla"
)

func testTitleMetadataForFilter() *niiebla.TitleMetadata {
	return &niiebla.TitleMetadata{
		ContentChunkEntries: []niiebla.TitleMetadataContentEntry{
			{ID: 0, Index: 0, Kind: niiebla.TitleMetadataContentEntryKindNormal, Size: 1024},
			{ID: 1, Index: 1, Kind: niiebla.TitleMetadataContentEntryKindDlc, Size: 2048},
			{ID: 2, Index: 2, Kind: niiebla.TitleMetadataContentEntryKindDlc, Size: 512},
			{ID: 3, Index: 3, Kind: niiebla.TitleMetadataContentEntryKindShared, Size: 4096},
		},
	}
}

func TestContentFilterSelectAll(t *testing.T) {
	titleMetadata := testTitleMetadataForFilter()

	filter, err := NewContentFilter(`kind == "dlc"`)
	if err != nil {
		t.Fatalf("NewContentFilter() error = %v", err)
	}

	selectors, err := filter.SelectAll(titleMetadata)
	if err != nil {
		t.Fatalf("SelectAll() error = %v", err)
	}
	if len(selectors) != 2 {
		t.Fatalf("SelectAll() returned %d selectors, want 2", len(selectors))
	}

	for _, selector := range selectors {
		entry, err := selector.ContentEntry(titleMetadata)
		if err != nil {
			t.Fatalf("ContentEntry() error = %v", err)
		}
		if entry.Kind != niiebla.TitleMetadataContentEntryKindDlc {
			t.Errorf("selected entry kind = %v, want Dlc", entry.Kind)
		}
	}
}

func TestContentFilterSelectFirst(t *testing.T) {
	titleMetadata := testTitleMetadataForFilter()

	filter, err := NewContentFilter("size > 1500")
	if err != nil {
		t.Fatalf("NewContentFilter() error = %v", err)
	}

	selector, err := filter.SelectFirst(titleMetadata)
	if err != nil {
		t.Fatalf("SelectFirst() error = %v", err)
	}

	entry, err := selector.ContentEntry(titleMetadata)
	if err != nil {
		t.Fatalf("ContentEntry() error = %v", err)
	}
	if entry.ID != 1 {
		t.Errorf("SelectFirst() matched ID %d, want 1", entry.ID)
	}
}

func TestContentFilterSelectFirstNoMatch(t *testing.T) {
	titleMetadata := testTitleMetadataForFilter()

	filter, err := NewContentFilter("id == 9999")
	if err != nil {
		t.Fatalf("NewContentFilter() error = %v", err)
	}

	_, err = filter.SelectFirst(titleMetadata)
	if _, ok := err.(*niiebla.ContentNotFoundError); !ok {
		t.Fatalf("SelectFirst() error = %v, want *niiebla.ContentNotFoundError", err)
	}
}

func TestContentFilterInvalidExpression(t *testing.T) {
	if _, err := NewContentFilter("this is not valid expr syntax !!!"); err == nil {
		t.Fatal("NewContentFilter() expected an error for invalid syntax")
	}
}

func TestContentFilterNonBooleanExpression(t *testing.T) {
	if _, err := NewContentFilter("size"); err == nil {
		t.Fatal("NewContentFilter() expected an error for a non-boolean expression")
	}
}

func TestSelectContentWhere(t *testing.T) {
	titleMetadata := testTitleMetadataForFilter()

	selectors, err := SelectContentWhere(titleMetadata, "index >= 2")
	if err != nil {
		t.Fatalf("SelectContentWhere() error = %v", err)
	}
	if len(selectors) != 2 {
		t.Fatalf("SelectContentWhere() returned %d selectors, want 2", len(selectors))
	}
}
