// Package diag carries non-fatal findings out of the profile pipeline.
//
// Parsing never prints. Components record a Diagnostic on the Sink they were
// given; the command line routes them to commonlog, the language server turns
// them into editor diagnostics and tests collect them for assertions.
package diag

import "fmt"

type Kind int

const (
	KindTrace Kind = iota
	KindSummary
	KindSchemaMismatch
	KindNonElementChild
	KindValueCoercion
	KindMisc
	KindMismatchedTag
	KindTextOutsideElement
	KindDocumentParse
)

var kindNames = map[Kind]string{
	KindTrace:              "trace",
	KindSummary:            "summary",
	KindSchemaMismatch:     "schema-mismatch",
	KindNonElementChild:    "non-element-child",
	KindValueCoercion:      "value-coercion",
	KindMisc:               "misc",
	KindMismatchedTag:      "mismatched-tag",
	KindTextOutsideElement: "text-outside-element",
	KindDocumentParse:      "document-parse",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Diagnostic is one recorded finding. Element names the element being
// processed when it was recorded; Line and Column are zero when unknown.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Element  string
	Message  string
	Line     int
	Column   int
}

func (d Diagnostic) String() string {
	prefix := d.Kind.String()
	if d.Line > 0 {
		prefix = fmt.Sprintf("%d:%d: %s", d.Line, d.Column, prefix)
	}
	if d.Element != "" {
		return fmt.Sprintf("%s: <%s> %s", prefix, d.Element, d.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, d.Message)
}

type Sink interface {
	Record(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Record(d Diagnostic) { f(d) }

// Discard drops everything.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Tee records every diagnostic on each of sinks in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Record(d)
		}
	})
}

// AtLeast forwards only diagnostics with severity min or higher.
func AtLeast(min Severity, sink Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		if d.Severity >= min {
			sink.Record(d)
		}
	})
}

// Collector keeps diagnostics in memory in the order they were recorded.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Record(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

func (c *Collector) OfKind(kind Kind) []Diagnostic {
	var result []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Kind == kind {
			result = append(result, d)
		}
	}
	return result
}

func (c *Collector) Reset() {
	c.Diagnostics = nil
}
