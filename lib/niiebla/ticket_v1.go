package niiebla

import (
	"fmt"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// WARNING: this format is sprawling and only lightly used in the wild
// (mostly DLC bookkeeping for Wii no Ma), so it is ported as literally as
// possible rather than smoothed over.

const (
	preSwitchTicketV1HeaderSize        uint16 = 20
	preSwitchTicketV1SectionHeaderSize uint16 = 20
)

// PreSwitchTicketV1 holds the extra data available on V1 tickets.
type PreSwitchTicketV1 struct {
	// Sections is the set of data sections present on the V1 ticket.
	Sections []PreSwitchTicketV1Section

	// Flags are extra flags for the V1 ticket itself; their meaning is
	// still unknown.
	Flags uint32
}

// UnknownTicketV1VersionError is returned when a V1 ticket extension's
// version field is not 1.
type UnknownTicketV1VersionError struct{ Version uint16 }

func (e *UnknownTicketV1VersionError) Error() string {
	return fmt.Sprintf("unknown ticket v1 version: %d", e.Version)
}

// UnknownTicketV1HeaderSizeError is returned when a V1 ticket extension's
// header_size field does not match the expected fixed value.
type UnknownTicketV1HeaderSizeError struct{ Size uint16 }

func (e *UnknownTicketV1HeaderSizeError) Error() string {
	return fmt.Sprintf("unknown ticket v1 header size: %d", e.Size)
}

// UnknownTicketV1SectionHeaderSizeError is returned when a V1 ticket
// section's header size field does not match the expected fixed value.
type UnknownTicketV1SectionHeaderSizeError struct{ Size uint16 }

func (e *UnknownTicketV1SectionHeaderSizeError) Error() string {
	return fmt.Sprintf("unknown ticket v1 section header size: %d", e.Size)
}

// UnknownTicketV1SectionKindError is returned when a V1 ticket section's
// kind tag does not match any known record kind.
type UnknownTicketV1SectionKindError struct{ Kind uint16 }

func (e *UnknownTicketV1SectionKindError) Error() string {
	return fmt.Sprintf("unknown ticket v1 section type: %d", e.Kind)
}

// UnknownTicketV1TotalSizeError is returned when a V1 ticket extension's
// declared total size does not match its computed size.
type UnknownTicketV1TotalSizeError struct{ Size uint32 }

func (e *UnknownTicketV1TotalSizeError) Error() string {
	return fmt.Sprintf("unknown ticket v1 total size: %d", e.Size)
}

func parsePreSwitchTicketV1(s io.ReadWriteSeeker) (*PreSwitchTicketV1, error) {
	pin, err := stream.NewPin(s)
	if err != nil {
		return nil, err
	}

	version, err := stream.ReadU16(pin)
	if err != nil {
		return nil, err
	}
	if version != 1 {
		return nil, &UnknownTicketV1VersionError{Version: version}
	}

	headerSize, err := stream.ReadU16(pin)
	if err != nil {
		return nil, err
	}
	if headerSize != preSwitchTicketV1HeaderSize {
		return nil, &UnknownTicketV1HeaderSizeError{Size: headerSize}
	}

	v1DataSize, err := stream.ReadU32(pin)
	if err != nil {
		return nil, err
	}

	firstSectionHeaderOffset, err := stream.ReadU32(pin)
	if err != nil {
		return nil, err
	}

	numberOfSections, err := stream.ReadU16(pin)
	if err != nil {
		return nil, err
	}

	sectionHeaderSize, err := stream.ReadU16(pin)
	if err != nil {
		return nil, err
	}
	if sectionHeaderSize != preSwitchTicketV1SectionHeaderSize {
		return nil, &UnknownTicketV1SectionHeaderSizeError{Size: sectionHeaderSize}
	}

	flags, err := stream.ReadU32(pin)
	if err != nil {
		return nil, err
	}

	if _, err := pin.SeekFromPin(int64(firstSectionHeaderOffset)); err != nil {
		return nil, err
	}

	sections := make([]PreSwitchTicketV1Section, 0, numberOfSections)
	for i := uint16(0); i < numberOfSections; i++ {
		section, err := parsePreSwitchTicketV1Section(pin)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	v1 := &PreSwitchTicketV1{Sections: sections, Flags: flags}

	if v1DataSize != v1.size() {
		return nil, &UnknownTicketV1TotalSizeError{Size: v1DataSize}
	}

	return v1, nil
}

func (v *PreSwitchTicketV1) serialize(s io.ReadWriteSeeker) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	// Ticket V1 version
	if err := stream.WriteU16(pin, 1); err != nil {
		return err
	}

	if err := stream.WriteU16(pin, preSwitchTicketV1HeaderSize); err != nil {
		return err
	}
	if err := stream.WriteU32(pin, v.size()); err != nil {
		return err
	}

	// Skip this for now as we cannot know the position of the first
	// section yet
	firstSectionHeaderPosition, err := pin.RelativePosition()
	if err != nil {
		return err
	}
	if _, err := pin.Seek(4, io.SeekCurrent); err != nil {
		return err
	}

	if err := stream.WriteU16(pin, uint16(len(v.Sections))); err != nil {
		return err
	}
	if err := stream.WriteU16(pin, preSwitchTicketV1SectionHeaderSize); err != nil {
		return err
	}
	if err := stream.WriteU32(pin, v.Flags); err != nil {
		return err
	}

	startOfRecords := make([]uint32, len(v.Sections))
	for i, section := range v.Sections {
		pos, err := pin.RelativePosition()
		if err != nil {
			return err
		}
		startOfRecords[i] = uint32(pos)

		if err := section.Records.serialize(pin); err != nil {
			return err
		}
	}

	for i, section := range v.Sections {
		if i == 0 {
			firstSectionBytePosition, err := pin.RelativePosition()
			if err != nil {
				return err
			}

			if _, err := pin.SeekFromPin(firstSectionHeaderPosition); err != nil {
				return err
			}
			if err := stream.WriteU32(pin, uint32(firstSectionBytePosition)); err != nil {
				return err
			}

			if _, err := pin.SeekFromPin(firstSectionBytePosition); err != nil {
				return err
			}
		}

		if err := stream.WriteU32(pin, startOfRecords[i]); err != nil {
			return err
		}
		if err := stream.WriteU32(pin, section.Records.length()); err != nil {
			return err
		}
		if err := stream.WriteU32(pin, section.Records.sizeOfOneRecord()); err != nil {
			return err
		}
		if err := stream.WriteU32(pin, uint32(preSwitchTicketV1SectionHeaderSize)); err != nil {
			return err
		}
		if err := stream.WriteU16(pin, section.Records.kind()); err != nil {
			return err
		}
		if err := stream.WriteU16(pin, section.Flags); err != nil {
			return err
		}
	}

	return nil
}

func (v *PreSwitchTicketV1) size() uint32 {
	size := uint32(preSwitchTicketV1HeaderSize) + uint32(preSwitchTicketV1SectionHeaderSize)*uint32(len(v.Sections))
	for _, section := range v.Sections {
		size += section.Records.size()
	}
	return size
}

// PreSwitchTicketV1Section is the data of a section inside a V1 ticket.
type PreSwitchTicketV1Section struct {
	// Records inside the section.
	Records PreSwitchTicketV1Records

	// Flags are extra flags for the section itself; their meaning is
	// still unknown.
	Flags uint16
}

// PreSwitchTicketV1Records is the set of records a section can have. Due to
// technical limitations of the format itself, all records in a section must
// be of the same kind.
type PreSwitchTicketV1Records interface {
	kind() uint16
	length() uint32
	sizeOfOneRecord() uint32
	size() uint32
	serialize(w io.Writer) error
}

// PreSwitchTicketV1RecordsPermanent is a set of "permanent" records.
type PreSwitchTicketV1RecordsPermanent []PreSwitchTicketV1RecordPermanent

// PreSwitchTicketV1RecordsSubscription is a set of "subscription" records.
type PreSwitchTicketV1RecordsSubscription []PreSwitchTicketV1RecordSubscription

// PreSwitchTicketV1RecordsContent is a set of "content" records.
type PreSwitchTicketV1RecordsContent []PreSwitchTicketV1RecordContent

// PreSwitchTicketV1RecordsContentConsumption is a set of "content
// consumption" records.
type PreSwitchTicketV1RecordsContentConsumption []PreSwitchTicketV1RecordContentConsumption

// PreSwitchTicketV1RecordsAccessTitle is a set of "access title" records.
type PreSwitchTicketV1RecordsAccessTitle []PreSwitchTicketV1RecordAccessTitle

func (r PreSwitchTicketV1RecordsPermanent) kind() uint16            { return 1 }
func (r PreSwitchTicketV1RecordsSubscription) kind() uint16         { return 2 }
func (r PreSwitchTicketV1RecordsContent) kind() uint16              { return 3 }
func (r PreSwitchTicketV1RecordsContentConsumption) kind() uint16   { return 4 }
func (r PreSwitchTicketV1RecordsAccessTitle) kind() uint16          { return 5 }

func (r PreSwitchTicketV1RecordsPermanent) length() uint32          { return uint32(len(r)) }
func (r PreSwitchTicketV1RecordsSubscription) length() uint32       { return uint32(len(r)) }
func (r PreSwitchTicketV1RecordsContent) length() uint32            { return uint32(len(r)) }
func (r PreSwitchTicketV1RecordsContentConsumption) length() uint32 { return uint32(len(r)) }
func (r PreSwitchTicketV1RecordsAccessTitle) length() uint32        { return uint32(len(r)) }

func (r PreSwitchTicketV1RecordsPermanent) sizeOfOneRecord() uint32          { return 16 + 4 }
func (r PreSwitchTicketV1RecordsSubscription) sizeOfOneRecord() uint32       { return 16 + 4 + 4 }
func (r PreSwitchTicketV1RecordsContent) sizeOfOneRecord() uint32           { return 128 + 4 }
func (r PreSwitchTicketV1RecordsContentConsumption) sizeOfOneRecord() uint32 { return 2 + 2 + 4 }
func (r PreSwitchTicketV1RecordsAccessTitle) sizeOfOneRecord() uint32        { return 8 + 8 }

func (r PreSwitchTicketV1RecordsPermanent) size() uint32 {
	return r.sizeOfOneRecord() * r.length()
}
func (r PreSwitchTicketV1RecordsSubscription) size() uint32 {
	return r.sizeOfOneRecord() * r.length()
}
func (r PreSwitchTicketV1RecordsContent) size() uint32 {
	return r.sizeOfOneRecord() * r.length()
}
func (r PreSwitchTicketV1RecordsContentConsumption) size() uint32 {
	return r.sizeOfOneRecord() * r.length()
}
func (r PreSwitchTicketV1RecordsAccessTitle) size() uint32 {
	return r.sizeOfOneRecord() * r.length()
}

func (r PreSwitchTicketV1RecordsPermanent) serialize(w io.Writer) error {
	for _, record := range r {
		if err := record.ReferenceID.serialize(w); err != nil {
			return err
		}
	}
	return nil
}

func (r PreSwitchTicketV1RecordsSubscription) serialize(w io.Writer) error {
	for _, record := range r {
		if err := stream.WriteU32(w, record.ExpirationTime); err != nil {
			return err
		}
		if err := record.ReferenceID.serialize(w); err != nil {
			return err
		}
	}
	return nil
}

func (r PreSwitchTicketV1RecordsContent) serialize(w io.Writer) error {
	for _, record := range r {
		if err := stream.WriteU32(w, record.OffsetContentIndex); err != nil {
			return err
		}
		if _, err := w.Write(record.AccessMask[:]); err != nil {
			return err
		}
	}
	return nil
}

func (r PreSwitchTicketV1RecordsContentConsumption) serialize(w io.Writer) error {
	for _, record := range r {
		if err := stream.WriteU16(w, record.ContentIndex); err != nil {
			return err
		}
		if err := stream.WriteU16(w, record.LimitCode); err != nil {
			return err
		}
		if err := stream.WriteU32(w, record.LimitValue); err != nil {
			return err
		}
	}
	return nil
}

func (r PreSwitchTicketV1RecordsAccessTitle) serialize(w io.Writer) error {
	for _, record := range r {
		if err := record.TitleID.Serialize(w); err != nil {
			return err
		}
		if err := stream.WriteU64(w, record.TitleMask); err != nil {
			return err
		}
	}
	return nil
}

// parsePreSwitchTicketV1Section reads one section header and its records.
// It shares pin with the caller (rather than creating a sub-pin) because
// section_records_offset is relative to the start of the whole V1
// extension, not to this section header.
func parsePreSwitchTicketV1Section(pin *stream.Pin) (PreSwitchTicketV1Section, error) {
	sectionRecordsOffset, err := stream.ReadU32(pin)
	if err != nil {
		return PreSwitchTicketV1Section{}, err
	}
	numberOfRecords, err := stream.ReadU32(pin)
	if err != nil {
		return PreSwitchTicketV1Section{}, err
	}

	// Not worth checking
	if _, err := stream.ReadU32(pin); err != nil {
		return PreSwitchTicketV1Section{}, err
	}
	if _, err := stream.ReadU32(pin); err != nil {
		return PreSwitchTicketV1Section{}, err
	}

	sectionKind, err := stream.ReadU16(pin)
	if err != nil {
		return PreSwitchTicketV1Section{}, err
	}
	flags, err := stream.ReadU16(pin)
	if err != nil {
		return PreSwitchTicketV1Section{}, err
	}

	nextSectionPosition, err := stream.StreamPosition(pin)
	if err != nil {
		return PreSwitchTicketV1Section{}, err
	}

	if _, err := pin.SeekFromPin(int64(sectionRecordsOffset)); err != nil {
		return PreSwitchTicketV1Section{}, err
	}

	var records PreSwitchTicketV1Records
	switch sectionKind {
	case 1:
		data := make(PreSwitchTicketV1RecordsPermanent, 0, numberOfRecords)
		for i := uint32(0); i < numberOfRecords; i++ {
			referenceID, err := parsePreSwitchTicketV1ReferenceID(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			data = append(data, PreSwitchTicketV1RecordPermanent{ReferenceID: referenceID})
		}
		records = data

	case 2:
		data := make(PreSwitchTicketV1RecordsSubscription, 0, numberOfRecords)
		for i := uint32(0); i < numberOfRecords; i++ {
			expirationTime, err := stream.ReadU32(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			referenceID, err := parsePreSwitchTicketV1ReferenceID(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			data = append(data, PreSwitchTicketV1RecordSubscription{
				ExpirationTime: expirationTime,
				ReferenceID:    referenceID,
			})
		}
		records = data

	case 3:
		data := make(PreSwitchTicketV1RecordsContent, 0, numberOfRecords)
		for i := uint32(0); i < numberOfRecords; i++ {
			offsetContentIndex, err := stream.ReadU32(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			var accessMask [128]byte
			if err := stream.ReadExactly(pin, accessMask[:]); err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			data = append(data, PreSwitchTicketV1RecordContent{
				OffsetContentIndex: offsetContentIndex,
				AccessMask:         accessMask,
			})
		}
		records = data

	case 4:
		data := make(PreSwitchTicketV1RecordsContentConsumption, 0, numberOfRecords)
		for i := uint32(0); i < numberOfRecords; i++ {
			contentIndex, err := stream.ReadU16(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			limitCode, err := stream.ReadU16(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			limitValue, err := stream.ReadU32(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			data = append(data, PreSwitchTicketV1RecordContentConsumption{
				ContentIndex: contentIndex,
				LimitCode:    limitCode,
				LimitValue:   limitValue,
			})
		}
		records = data

	case 5:
		data := make(PreSwitchTicketV1RecordsAccessTitle, 0, numberOfRecords)
		for i := uint32(0); i < numberOfRecords; i++ {
			titleIDRaw, err := stream.ReadU64(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			titleMask, err := stream.ReadU64(pin)
			if err != nil {
				return PreSwitchTicketV1Section{}, err
			}
			data = append(data, PreSwitchTicketV1RecordAccessTitle{
				TitleID:   TitleId(titleIDRaw),
				TitleMask: titleMask,
			})
		}
		records = data

	default:
		return PreSwitchTicketV1Section{}, &UnknownTicketV1SectionKindError{Kind: sectionKind}
	}

	if _, err := pin.IntoInner().Seek(nextSectionPosition, io.SeekStart); err != nil {
		return PreSwitchTicketV1Section{}, err
	}

	return PreSwitchTicketV1Section{Records: records, Flags: flags}, nil
}

// PreSwitchTicketV1ReferenceID is a reference ID whose meaning and use are
// still unknown.
type PreSwitchTicketV1ReferenceID struct {
	ID         [16]byte
	Attributes uint32
}

func parsePreSwitchTicketV1ReferenceID(r io.Reader) (PreSwitchTicketV1ReferenceID, error) {
	var id [16]byte
	if err := stream.ReadExactly(r, id[:]); err != nil {
		return PreSwitchTicketV1ReferenceID{}, err
	}
	attributes, err := stream.ReadU32(r)
	if err != nil {
		return PreSwitchTicketV1ReferenceID{}, err
	}
	return PreSwitchTicketV1ReferenceID{ID: id, Attributes: attributes}, nil
}

func (id PreSwitchTicketV1ReferenceID) serialize(w io.Writer) error {
	if _, err := w.Write(id.ID[:]); err != nil {
		return err
	}
	return stream.WriteU32(w, id.Attributes)
}

// PreSwitchTicketV1RecordPermanent is a record of kind "permanent"; its
// meaning is still unknown.
type PreSwitchTicketV1RecordPermanent struct {
	ReferenceID PreSwitchTicketV1ReferenceID
}

// PreSwitchTicketV1RecordSubscription is a record of kind "subscription".
type PreSwitchTicketV1RecordSubscription struct {
	// ExpirationTime is a UNIX timestamp at which the record expires.
	ExpirationTime uint32
	ReferenceID    PreSwitchTicketV1ReferenceID
}

// PreSwitchTicketV1RecordContent is a record of kind "content".
type PreSwitchTicketV1RecordContent struct {
	OffsetContentIndex uint32
	AccessMask         [128]byte
}

// PreSwitchTicketV1RecordContentConsumption is a record of kind "content
// consumption".
type PreSwitchTicketV1RecordContentConsumption struct {
	ContentIndex uint16
	LimitCode    uint16
	LimitValue   uint32
}

// PreSwitchTicketV1RecordAccessTitle is a record of kind "access title".
type PreSwitchTicketV1RecordAccessTitle struct {
	// TitleID is the title whose access has been granted.
	TitleID   TitleId
	TitleMask uint64
}
