package gnucash

import (
	"fmt"
)

// Position locates an element in a GnuCash document.
type Position struct {
	Filename string
	Line     int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// ParseError is returned when the document is not well-formed XML.
type ParseError struct {
	Pos        Position
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *ParseError) GetPosition() Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// VersionError is returned when the document does not hold exactly one
// gnc:book of the supported version.
type VersionError struct {
	Filename string
	Version  string
	Books    int
}

func (e *VersionError) Error() string {
	location := e.Filename
	if location == "" {
		location = "<input>"
	}

	switch e.Books {
	case 0:
		return fmt.Sprintf("%s: no gnc:book element found", location)
	case 1:
		return fmt.Sprintf("%s: unsupported book version %q (expected %q)", location, e.Version, SupportedVersion)
	default:
		return fmt.Sprintf("%s: found %d gnc:book elements, expected exactly one", location, e.Books)
	}
}

// MissingElementError is returned when a required child element is absent.
type MissingElementError struct {
	Pos     Position
	Parent  string
	Element string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("%s: %s is missing required element %s", e.Pos, e.Parent, e.Element)
}

func (e *MissingElementError) GetPosition() Position {
	return e.Pos
}

// DateError is returned when a transaction's posted date cannot be parsed.
type DateError struct {
	Pos        Position
	Value      string
	Underlying error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: invalid posted date %q: %v", e.Pos, e.Value, e.Underlying)
}

func (e *DateError) GetPosition() Position {
	return e.Pos
}

func (e *DateError) Unwrap() error {
	return e.Underlying
}

// ValueError is returned when a split value is not a valid num/denom pair.
type ValueError struct {
	Pos     Position
	Value   string
	Message string
}

func (e *ValueError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("invalid split value %q: %s", e.Value, e.Message)
	}
	return fmt.Sprintf("%s: invalid split value %q: %s", e.Pos, e.Value, e.Message)
}

func (e *ValueError) GetPosition() Position {
	return e.Pos
}
