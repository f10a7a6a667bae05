package domain

import "strings"

// FileType represents the contract file types accepted for extraction.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeTXT FileType = "txt"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
	"txt": FileTypeTXT,
}

// FileTypeFromName resolves the FileType of a file name by its extension.
func FileTypeFromName(name string) (FileType, bool) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return "", false
	}
	ft, ok := AllowedExtensions[strings.ToLower(name[idx+1:])]
	return ft, ok
}

// SourceKind records where the text of an extraction came from.
type SourceKind string

const (
	SourceKindDefault SourceKind = "default"
	SourceKindText    SourceKind = "text"
	SourceKindPDF     SourceKind = "pdf"
	SourceKindTXT     SourceKind = "txt"
)

// MatterStatus is the lifecycle state of a legal matter.
type MatterStatus string

const (
	MatterStatusDraft   MatterStatus = "Draft"
	MatterStatusActive  MatterStatus = "Active"
	MatterStatusExpired MatterStatus = "Expired"
	MatterStatusClosed  MatterStatus = "Closed"
)

// ValidMatterStatuses lists the accepted matter statuses.
var ValidMatterStatuses = map[MatterStatus]bool{
	MatterStatusDraft:   true,
	MatterStatusActive:  true,
	MatterStatusExpired: true,
	MatterStatusClosed:  true,
}

// Defaults for scalar extraction fields.
const (
	DefaultGoverningLaw = "Not specified"
	DefaultContractType = "General Contract"
	DefaultSummary      = "Summary not available"
	DefaultCurrency     = "USD"
)
