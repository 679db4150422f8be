package gnucash

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/robinvdvleuten/gncassert/telemetry"
)

// Layouts accepted for ts:date. GnuCash writes the zone offset; older
// files and hand-written fixtures often omit it.
var dateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// xmlAccount mirrors the gnc:account children that are read.
type xmlAccount struct {
	ID     *string `xml:"id"`
	Name   *string `xml:"name"`
	Type   string  `xml:"type"`
	Parent string  `xml:"parent"`
}

// xmlTransaction mirrors the gnc:transaction children that are read.
type xmlTransaction struct {
	ID          string     `xml:"id"`
	DatePosted  *xmlDate   `xml:"date-posted"`
	Description *string    `xml:"description"`
	Splits      []xmlSplit `xml:"splits>split"`
}

type xmlDate struct {
	Date *string `xml:"date"`
}

type xmlSplit struct {
	ID      string  `xml:"id"`
	Memo    string  `xml:"memo"`
	Value   *string `xml:"value"`
	Account *string `xml:"account"`
}

// Parse parses a GnuCash XML document and checks its book version.
func Parse(ctx context.Context, data []byte) (*Book, error) {
	return ParseWithFilename(ctx, "", data)
}

// ParseWithFilename is like Parse but reports positions relative to filename.
func ParseWithFilename(ctx context.Context, filename string, data []byte) (*Book, error) {
	timer := telemetry.StartTimer(ctx, "gnucash.parse")
	defer timer.End()

	p := &parser{
		filename: filename,
		dec:      xml.NewDecoder(bytes.NewReader(data)),
	}

	return p.parse(ctx)
}

type parser struct {
	filename string
	dec      *xml.Decoder
}

func (p *parser) parse(ctx context.Context) (*Book, error) {
	var (
		book    *Book
		books   int
		version string
	)

	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, p.syntaxError(err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "book" {
			continue
		}

		books++
		b, err := p.parseBook(ctx, start)
		if err != nil {
			return nil, err
		}
		if book == nil {
			book = b
			version = b.Version
		}
	}

	if books != 1 || version != SupportedVersion {
		return nil, &VersionError{Filename: p.filename, Version: version, Books: books}
	}

	return book, nil
}

// parseBook consumes a gnc:book element, including its end tag.
func (p *parser) parseBook(ctx context.Context, start xml.StartElement) (*Book, error) {
	book := &Book{}
	for _, attr := range start.Attr {
		if attr.Name.Local == "version" {
			book.Version = attr.Value
		}
	}

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, p.syntaxError(err)
		}

		switch t := tok.(type) {
		case xml.EndElement:
			return book, nil

		case xml.StartElement:
			switch t.Name.Local {
			case "account":
				acc, err := p.parseAccount(t)
				if err != nil {
					return nil, err
				}
				book.Accounts = append(book.Accounts, acc)

			case "transaction":
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				default:
				}

				txn, err := p.parseTransaction(t)
				if err != nil {
					return nil, err
				}
				book.Transactions = append(book.Transactions, txn)

			default:
				// Counters, commodities, prices, scheduled-transaction
				// templates and budgets carry nothing balances depend on.
				if err := p.dec.Skip(); err != nil {
					return nil, p.syntaxError(err)
				}
			}
		}
	}
}

func (p *parser) parseAccount(start xml.StartElement) (*Account, error) {
	pos := p.pos()

	var el xmlAccount
	if err := p.dec.DecodeElement(&el, &start); err != nil {
		return nil, p.syntaxError(err)
	}

	if el.ID == nil {
		return nil, &MissingElementError{Pos: pos, Parent: "gnc:account", Element: "act:id"}
	}
	if el.Name == nil {
		return nil, &MissingElementError{Pos: pos, Parent: "gnc:account", Element: "act:name"}
	}

	return &Account{
		ID:       strings.TrimSpace(*el.ID),
		Name:     *el.Name,
		Type:     strings.TrimSpace(el.Type),
		ParentID: strings.TrimSpace(el.Parent),
	}, nil
}

func (p *parser) parseTransaction(start xml.StartElement) (*Transaction, error) {
	pos := p.pos()

	var el xmlTransaction
	if err := p.dec.DecodeElement(&el, &start); err != nil {
		return nil, p.syntaxError(err)
	}

	if el.DatePosted == nil {
		return nil, &MissingElementError{Pos: pos, Parent: "gnc:transaction", Element: "trn:date-posted"}
	}
	if el.DatePosted.Date == nil {
		return nil, &MissingElementError{Pos: pos, Parent: "trn:date-posted", Element: "ts:date"}
	}
	date, err := ParseDate(*el.DatePosted.Date)
	if err != nil {
		return nil, &DateError{Pos: pos, Value: *el.DatePosted.Date, Underlying: err}
	}

	if el.Description == nil {
		return nil, &MissingElementError{Pos: pos, Parent: "gnc:transaction", Element: "trn:description"}
	}

	txn := &Transaction{
		ID:          strings.TrimSpace(el.ID),
		Date:        date,
		Description: *el.Description,
		Splits:      make([]*Split, 0, len(el.Splits)),
		Line:        pos.Line,
	}

	for _, s := range el.Splits {
		if s.Account == nil {
			return nil, &MissingElementError{Pos: pos, Parent: "trn:split", Element: "split:account"}
		}
		if s.Value == nil {
			return nil, &MissingElementError{Pos: pos, Parent: "trn:split", Element: "split:value"}
		}

		value, err := ParseValue(*s.Value)
		if err != nil {
			var valueErr *ValueError
			if errors.As(err, &valueErr) {
				valueErr.Pos = pos
			}
			return nil, err
		}

		txn.Splits = append(txn.Splits, &Split{
			ID:        strings.TrimSpace(s.ID),
			AccountID: strings.TrimSpace(*s.Account),
			Memo:      s.Memo,
			Value:     value,
		})
	}

	return txn, nil
}

// ParseDate parses a ts:date value and truncates it to the calendar date
// as written, ignoring the time of day and any zone offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (p *parser) pos() Position {
	line, _ := p.dec.InputPos()
	return Position{Filename: p.filename, Line: line}
}

func (p *parser) syntaxError(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{
			Pos:        Position{Filename: p.filename, Line: syntaxErr.Line},
			Message:    syntaxErr.Msg,
			Underlying: err,
		}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseError{
			Pos:        p.pos(),
			Message:    "unexpected end of document",
			Underlying: err,
		}
	}

	return &ParseError{
		Pos:        p.pos(),
		Message:    fmt.Sprintf("invalid document: %v", err),
		Underlying: err,
	}
}
