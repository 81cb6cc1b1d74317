package wad

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/zelzip/niiebla-go/lib/niiebla"
)

// ContentFilterContext is the set of variables available to a ContentFilter
// expression, one evaluated per content entry of a title metadata.
type ContentFilterContext struct {
	ID               uint32 `expr:"id"`
	Index            uint16 `expr:"index"`
	Kind             string `expr:"kind"`
	Size             uint64 `expr:"size"`
	PhysicalPosition int    `expr:"position"`
}

func contentEntryKindName(kind niiebla.TitleMetadataContentEntryKind) string {
	switch kind {
	case niiebla.TitleMetadataContentEntryKindNormal:
		return "normal"
	case niiebla.TitleMetadataContentEntryKindNormalWiiUKind1:
		return "normal_wii_u_kind_1"
	case niiebla.TitleMetadataContentEntryKindNormalWiiUKind2:
		return "normal_wii_u_kind_2"
	case niiebla.TitleMetadataContentEntryKindNormalWiiUKind3:
		return "normal_wii_u_kind_3"
	case niiebla.TitleMetadataContentEntryKindDlc:
		return "dlc"
	case niiebla.TitleMetadataContentEntryKindShared:
		return "shared"
	default:
		return "unknown"
	}
}

// ContentFilter is a compiled boolean expression over a content entry's
// id/index/kind/size/physical position, used to pick content entries out
// of a title metadata without hardcoding a selector ahead of time (e.g. a
// user-supplied `--where` expression in a CLI command).
//
// Example expressions:
//   - "kind == \"dlc\""
//   - "index == 0"
//   - "size > 1048576 and kind != \"shared\""
type ContentFilter struct {
	program    *vm.Program
	expression string
}

// NewContentFilter compiles expression into a ContentFilter.
func NewContentFilter(expression string) (*ContentFilter, error) {
	program, err := expr.Compile(
		expression,
		expr.Env(ContentFilterContext{}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid content filter expression: %w", err)
	}
	return &ContentFilter{program: program, expression: expression}, nil
}

// Expression returns the original expression string.
func (f *ContentFilter) Expression() string {
	return f.expression
}

func (f *ContentFilter) matches(position int, entry niiebla.TitleMetadataContentEntry) (bool, error) {
	ctx := ContentFilterContext{
		ID:               entry.ID,
		Index:            entry.Index,
		Kind:             contentEntryKindName(entry.Kind),
		Size:             entry.Size,
		PhysicalPosition: position,
	}

	result, err := expr.Run(f.program, ctx)
	if err != nil {
		return false, fmt.Errorf("content filter evaluation failed: %w", err)
	}
	return result.(bool), nil
}

// SelectAll returns a selector for every content entry of titleMetadata
// matching the filter, in physical-position order.
func (f *ContentFilter) SelectAll(titleMetadata *niiebla.TitleMetadata) ([]niiebla.ContentSelector, error) {
	var selectors []niiebla.ContentSelector

	for position, entry := range titleMetadata.ContentChunkEntries {
		matched, err := f.matches(position, entry)
		if err != nil {
			return nil, err
		}
		if matched {
			selectors = append(selectors, titleMetadata.SelectWithPhysicalPosition(position))
		}
	}

	return selectors, nil
}

// SelectFirst returns a selector for the first content entry of
// titleMetadata matching the filter.
func (f *ContentFilter) SelectFirst(titleMetadata *niiebla.TitleMetadata) (niiebla.ContentSelector, error) {
	for position, entry := range titleMetadata.ContentChunkEntries {
		matched, err := f.matches(position, entry)
		if err != nil {
			return niiebla.ContentSelector{}, err
		}
		if matched {
			return titleMetadata.SelectWithPhysicalPosition(position), nil
		}
	}

	return niiebla.ContentSelector{}, &niiebla.ContentNotFoundError{}
}

// SelectContentWhere compiles expression and returns a selector for every
// content entry of titleMetadata it matches, e.g. `kind == "dlc"`.
func SelectContentWhere(titleMetadata *niiebla.TitleMetadata, expression string) ([]niiebla.ContentSelector, error) {
	filter, err := NewContentFilter(expression)
	if err != nil {
		return nil, err
	}
	return filter.SelectAll(titleMetadata)
}
