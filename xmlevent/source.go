package xmlevent

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Handler receives one event per call. Returning an error stops the stream.
type Handler func(Event) error

// Source produces a finite, non-restartable sequence of events and pushes
// them to a handler in document order.
type Source interface {
	Stream(handle Handler) error
}

// ErrConsumed is returned when a Source is streamed a second time.
var ErrConsumed = errors.New("event source already consumed")

// Events replays a fixed list of events.
type Events []Event

func (evs Events) Stream(handle Handler) error {
	for _, ev := range evs {
		if err := handle(ev); err != nil {
			return err
		}
	}
	return nil
}

const cdataPrefix = "<![CDATA["

// Decoder turns a complete document into events using the encoding/xml
// tokenizer. Nesting is not checked here; that is the element builder's job.
// An unexpected end of input while elements are still open is reported as an
// Error event.
type Decoder struct {
	doc      string
	consumed bool
}

func NewDecoder(doc string) *Decoder {
	return &Decoder{doc: doc}
}

func (d *Decoder) Stream(handle Handler) error {
	if d.consumed {
		return ErrConsumed
	}
	d.consumed = true

	dec := xml.NewDecoder(strings.NewReader(d.doc))
	var open []string

	for {
		line, col := dec.InputPos()
		offset := dec.InputOffset()

		tok, err := dec.RawToken()
		if err == io.EOF {
			if len(open) > 0 {
				msg := fmt.Sprintf("unexpected EOF: element <%s> is not closed", open[len(open)-1])
				return fail(handle, Error(line, col, msg))
			}
			return nil
		}
		if err != nil {
			return fail(handle, errorEvent(dec, err))
		}

		var ev Event
		switch t := tok.(type) {
		case xml.StartElement:
			name := qualified(t.Name)
			open = append(open, name)
			ev = StartTag(name, convertAttrs(t.Attr)...)
		case xml.EndElement:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
			ev = EndTag(qualified(t.Name))
		case xml.CharData:
			if strings.HasPrefix(d.doc[offset:], cdataPrefix) {
				ev = CData(string(t))
			} else {
				ev = Text(string(t))
			}
		case xml.Comment:
			ev = Comment(string(t))
		default:
			// processing instructions and directives carry no profile data
			continue
		}

		if err := handle(ev.At(line, col)); err != nil {
			return err
		}
	}
}

// fail delivers an error event and stops. If the handler swallows it the
// stream still ends with the corresponding DocumentParseError.
func fail(handle Handler, ev Event) error {
	if err := handle(ev); err != nil {
		return err
	}
	return &DocumentParseError{Line: ev.Line, Column: ev.Column, Message: ev.Content}
}

func errorEvent(dec *xml.Decoder, err error) Event {
	line, col := dec.InputPos()
	msg := err.Error()
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		msg = syntaxErr.Msg
		if syntaxErr.Line > 0 {
			line = syntaxErr.Line
		}
	}
	return Error(line, col, msg)
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func convertAttrs(xmlAttrs []xml.Attr) []Attr {
	if len(xmlAttrs) == 0 {
		return nil
	}
	attrs := make([]Attr, 0, len(xmlAttrs))
	for _, a := range xmlAttrs {
		attrs = append(attrs, Attr{Name: qualified(a.Name), Value: a.Value})
	}
	return attrs
}
