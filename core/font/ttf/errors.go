package ttf

import (
	"errors"
	"fmt"

	"github.com/iris-gfx/iris/core"
)

// FormatErrorKind classifies violations of the TrueType binary format.
// Errors returned from this package carry a kind, so that clients can
// distinguish fatal font-level conditions from recoverable glyph-level ones.
type FormatErrorKind int

const (
	// BadMagic flags an unrecognized sfnt version tag. Fatal for Parse.
	BadMagic FormatErrorKind = iota + 1
	// MissingTable flags the absence of a required font table. Fatal for Parse.
	MissingTable
	// TruncatedBuffer flags a declared offset or length exceeding the
	// font's binary data. Fatal for the table being read.
	TruncatedBuffer
	// MalformedTable flags a structural invariant violated by a table,
	// e.g. decreasing loca offsets.
	MalformedTable
	// MalformedGlyph flags a structural invariant violated by a single
	// glyph's data. Local to that glyph; the font stays usable.
	MalformedGlyph
	// InvalidGlyphIndex flags a glyph index outside 0 … numGlyphs-1.
	// Local to a single lookup.
	InvalidGlyphIndex
	// UnsupportedCompoundEncoding flags a compound glyph positioning its
	// components by point matching, which we do not interpret. Reported
	// explicitly rather than silently mispositioning components.
	UnsupportedCompoundEncoding
)

func (k FormatErrorKind) String() string {
	switch k {
	case BadMagic:
		return "bad magic"
	case MissingTable:
		return "missing table"
	case TruncatedBuffer:
		return "truncated buffer"
	case MalformedTable:
		return "malformed table"
	case MalformedGlyph:
		return "malformed glyph"
	case InvalidGlyphIndex:
		return "invalid glyph index"
	case UnsupportedCompoundEncoding:
		return "unsupported compound encoding"
	}
	return "unknown error"
}

// FormatError reports a violation of the TrueType binary format. It
// satisfies core.AppError, i.e. it carries an error code and a user-level
// message.
type FormatError struct {
	kind  FormatErrorKind
	table Tag        // offending table, if known
	glyph GlyphIndex // offending glyph for glyph-scoped kinds
	msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("TrueType font format: %s", e.msg)
}

// Kind returns the format-error classification of e.
func (e *FormatError) Kind() FormatErrorKind {
	return e.kind
}

// Table returns the tag of the table an error occured in, or Tag(0).
func (e *FormatError) Table() Tag {
	return e.table
}

// Glyph returns the glyph index a glyph-scoped error occured for.
func (e *FormatError) Glyph() GlyphIndex {
	return e.glyph
}

// ErrorCode makes FormatError a core.AppError.
func (e *FormatError) ErrorCode() int {
	if e.kind == MissingTable {
		return core.EMISSING
	}
	return core.EINVALID
}

// UserMessage makes FormatError a core.AppError.
func (e *FormatError) UserMessage() string {
	return e.msg
}

var _ core.AppError = &FormatError{}

// ErrorKind extracts the format-error classification from err, or 0 if err
// has none.
func ErrorKind(err error) FormatErrorKind {
	var e *FormatError
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}

// --- Constructors, used throughout the package ------------------------------

func errBadMagic(version uint32) error {
	return &FormatError{
		kind: BadMagic,
		msg:  fmt.Sprintf("font type not supported: %#08x", version),
	}
}

func errMissingTable(tag Tag) error {
	return &FormatError{
		kind:  MissingTable,
		table: tag,
		msg:   fmt.Sprintf("font lacks required table (%s)", tag),
	}
}

func errTruncated(tag Tag, what string) error {
	return &FormatError{
		kind:  TruncatedBuffer,
		table: tag,
		msg:   fmt.Sprintf("table %s exceeds font data: %s", tag, what),
	}
}

func errMalformedTable(tag Tag, what string) error {
	return &FormatError{
		kind:  MalformedTable,
		table: tag,
		msg:   fmt.Sprintf("table %s: %s", tag, what),
	}
}

func errMalformedGlyph(gid GlyphIndex, what string) error {
	return &FormatError{
		kind:  MalformedGlyph,
		glyph: gid,
		msg:   fmt.Sprintf("glyph %d: %s", gid, what),
	}
}

func errInvalidGlyphIndex(gid GlyphIndex) error {
	return &FormatError{
		kind:  InvalidGlyphIndex,
		glyph: gid,
		msg:   fmt.Sprintf("glyph index %d out of range", gid),
	}
}

func errUnsupportedCompound(gid GlyphIndex) error {
	return &FormatError{
		kind:  UnsupportedCompoundEncoding,
		glyph: gid,
		msg:   fmt.Sprintf("glyph %d: compound components positioned by point matching", gid),
	}
}
