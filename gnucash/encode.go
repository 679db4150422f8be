package gnucash

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
)

const documentHeader = `<?xml version="1.0" encoding="utf-8" ?>
<gnc-v2
     xmlns:gnc="http://www.gnucash.org/XML/gnc"
     xmlns:act="http://www.gnucash.org/XML/act"
     xmlns:book="http://www.gnucash.org/XML/book"
     xmlns:cd="http://www.gnucash.org/XML/cd"
     xmlns:split="http://www.gnucash.org/XML/split"
     xmlns:trn="http://www.gnucash.org/XML/trn"
     xmlns:ts="http://www.gnucash.org/XML/ts">
`

// Encode writes b as a GnuCash XML document. Only the elements this
// package reads are written, so the output is not meant to be opened by
// GnuCash itself.
func Encode(w io.Writer, b *Book) error {
	e := &encoder{w: bufio.NewWriter(w)}

	e.raw(documentHeader)
	e.raw("<gnc:count-data cd:type=\"book\">1</gnc:count-data>\n")
	e.raw("<gnc:book version=\"")
	e.text(b.Version)
	e.raw("\">\n")

	for _, acc := range b.Accounts {
		e.raw("<gnc:account version=\"2.0.0\">\n")
		e.element("  ", "act:name", acc.Name)
		e.guid("  ", "act:id", acc.ID)
		if acc.Type != "" {
			e.element("  ", "act:type", acc.Type)
		}
		if acc.ParentID != "" {
			e.guid("  ", "act:parent", acc.ParentID)
		}
		e.raw("</gnc:account>\n")
	}

	for i, txn := range b.Transactions {
		id := txn.ID
		if id == "" {
			id = fmt.Sprintf("trn%d", i+1)
		}

		e.raw("<gnc:transaction version=\"2.0.0\">\n")
		e.guid("  ", "trn:id", id)
		e.raw("  <trn:date-posted>\n")
		e.element("    ", "ts:date", txn.Date.Format("2006-01-02 15:04:05 -0700"))
		e.raw("  </trn:date-posted>\n")
		e.element("  ", "trn:description", txn.Description)
		e.raw("  <trn:splits>\n")
		for j, s := range txn.Splits {
			sid := s.ID
			if sid == "" {
				sid = fmt.Sprintf("%s-s%d", id, j+1)
			}
			e.raw("    <trn:split>\n")
			e.guid("      ", "split:id", sid)
			if s.Memo != "" {
				e.element("      ", "split:memo", s.Memo)
			}
			e.element("      ", "split:value", s.Value.String())
			e.element("      ", "split:quantity", s.Value.String())
			e.guid("      ", "split:account", s.AccountID)
			e.raw("    </trn:split>\n")
		}
		e.raw("  </trn:splits>\n")
		e.raw("</gnc:transaction>\n")
	}

	e.raw("</gnc:book>\n</gnc-v2>\n")

	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// encoder remembers the first write error so callers check it once.
type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) raw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *encoder) text(s string) {
	if e.err != nil {
		return
	}
	e.err = xml.EscapeText(e.w, []byte(s))
}

func (e *encoder) element(indent, name, value string) {
	e.raw(indent + "<" + name + ">")
	e.text(value)
	e.raw("</" + name + ">\n")
}

func (e *encoder) guid(indent, name, value string) {
	e.raw(indent + "<" + name + " type=\"guid\">")
	e.text(value)
	e.raw("</" + name + ">\n")
}
