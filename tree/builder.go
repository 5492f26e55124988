package tree

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dhamidi/sfprofile/diag"
	"github.com/dhamidi/sfprofile/xmlevent"
)

type StructuralErrorKind int

const (
	MismatchedTag StructuralErrorKind = iota
	TextOutsideElement
)

// StructuralError reports events that cannot form a tree. It is fatal: the
// builder stops accepting events once it has returned one.
type StructuralError struct {
	Kind     StructuralErrorKind
	Expected string
	Found    string
	Line     int
	Column   int
}

func (e *StructuralError) Error() string {
	switch e.Kind {
	case MismatchedTag:
		if e.Expected == "" {
			return fmt.Sprintf("line %d column %d: unexpected closing tag </%s>", e.Line, e.Column, e.Found)
		}
		return fmt.Sprintf("line %d column %d: mismatched tag: expected </%s>, found </%s>", e.Line, e.Column, e.Expected, e.Found)
	default:
		return fmt.Sprintf("line %d column %d: text outside element", e.Line, e.Column)
	}
}

// ErrHalted is returned for events pushed after a fatal error.
var ErrHalted = errors.New("element builder halted")

// EmitFunc receives each completed top-level element.
type EmitFunc func(*Element) error

// Builder assembles elements from a flat event stream. It keeps a stack of
// open elements; an end tag that empties the stack completes a top-level
// element, which is handed to emit before the next event is accepted.
type Builder struct {
	stack  []*Element
	emit   EmitFunc
	sink   diag.Sink
	halted bool
}

func NewBuilder(emit EmitFunc, sink diag.Sink) *Builder {
	if sink == nil {
		sink = diag.Discard
	}
	return &Builder{emit: emit, sink: sink}
}

// Depth returns the number of open elements.
func (b *Builder) Depth() int {
	return len(b.stack)
}

func (b *Builder) Halted() bool {
	return b.halted
}

// Push consumes one event. The returned error is a *StructuralError, a
// *xmlevent.DocumentParseError, ErrHalted or whatever emit returned.
func (b *Builder) Push(ev xmlevent.Event) error {
	if b.halted {
		return ErrHalted
	}

	switch ev.Kind {
	case xmlevent.KindStartTag:
		b.stack = append(b.stack, &Element{
			Name:  ev.Name,
			Attrs: ev.Attrs,
			Pos:   Position{Line: ev.Line, Column: ev.Column},
		})
		return nil

	case xmlevent.KindText:
		return b.appendContent(ev, Text(ev.Content))
	case xmlevent.KindCData:
		return b.appendContent(ev, CData(ev.Content))
	case xmlevent.KindComment:
		return b.appendContent(ev, Comment(ev.Content))

	case xmlevent.KindEndTag:
		return b.close(ev)

	case xmlevent.KindError:
		b.halted = true
		b.sink.Record(diag.Diagnostic{
			Kind:     diag.KindDocumentParse,
			Severity: diag.SeverityError,
			Message:  ev.Content,
			Line:     ev.Line,
			Column:   ev.Column,
		})
		return &xmlevent.DocumentParseError{Line: ev.Line, Column: ev.Column, Message: ev.Content}
	}

	return fmt.Errorf("unknown event kind %s", ev.Kind)
}

func (b *Builder) appendContent(ev xmlevent.Event, child Child) error {
	if len(b.stack) > 0 {
		b.stack[len(b.stack)-1].AddChild(child)
		return nil
	}

	// Whitespace and comments may surround the root element.
	_, isCData := child.(CData)
	if !isCData && (ev.Kind == xmlevent.KindComment || isIgnorable(ev.Content)) {
		b.sink.Record(diag.Diagnostic{
			Kind:     diag.KindMisc,
			Severity: diag.SeverityDebug,
			Message:  fmt.Sprintf("dropped %s outside element", strings.ToLower(ev.Kind.String())),
			Line:     ev.Line,
			Column:   ev.Column,
		})
		return nil
	}

	return b.fail(&StructuralError{Kind: TextOutsideElement, Line: ev.Line, Column: ev.Column})
}

func (b *Builder) close(ev xmlevent.Event) error {
	if len(b.stack) == 0 {
		return b.fail(&StructuralError{Kind: MismatchedTag, Found: ev.Name, Line: ev.Line, Column: ev.Column})
	}

	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if top.Name != ev.Name {
		return b.fail(&StructuralError{
			Kind:     MismatchedTag,
			Expected: top.Name,
			Found:    ev.Name,
			Line:     ev.Line,
			Column:   ev.Column,
		})
	}

	if len(b.stack) > 0 {
		b.stack[len(b.stack)-1].AddChild(top)
		return nil
	}

	if b.emit == nil {
		return nil
	}
	if err := b.emit(top); err != nil {
		b.halted = true
		return err
	}
	return nil
}

func (b *Builder) fail(err *StructuralError) error {
	b.halted = true
	kind := diag.KindMismatchedTag
	if err.Kind == TextOutsideElement {
		kind = diag.KindTextOutsideElement
	}
	b.sink.Record(diag.Diagnostic{
		Kind:     kind,
		Severity: diag.SeverityError,
		Element:  err.Expected,
		Message:  err.Error(),
		Line:     err.Line,
		Column:   err.Column,
	})
	return err
}

func isIgnorable(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
