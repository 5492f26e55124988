package profile

import (
	"fmt"

	"github.com/dhamidi/sfprofile/diag"
	"github.com/dhamidi/sfprofile/tree"
	"github.com/dhamidi/sfprofile/xmlevent"
)

type Option func(*options)

type options struct {
	name string
	sink diag.Sink
}

// WithName sets the name of the resulting profile. Profile documents do not
// carry their own name; it usually comes from the file name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func WithSink(sink diag.Sink) Option {
	return func(o *options) {
		if sink != nil {
			o.sink = sink
		}
	}
}

// Parse decodes a complete profile document.
func Parse(doc string, opts ...Option) (*Profile, error) {
	return ParseSource(xmlevent.NewDecoder(doc), opts...)
}

// ParseSource drives src through the element builder and the mapper. The
// returned profile is never nil: when err is not nil it holds whatever was
// mapped before the failure.
func ParseSource(src xmlevent.Source, opts ...Option) (*Profile, error) {
	o := options{sink: diag.Discard}
	for _, opt := range opts {
		opt(&o)
	}

	p := New(o.name)
	mapper := NewMapper(p, o.sink)
	builder := tree.NewBuilder(mapper.Emit, o.sink)

	if err := src.Stream(builder.Push); err != nil {
		return p, fmt.Errorf("parse profile: %w", err)
	}

	if depth := builder.Depth(); depth > 0 {
		err := &xmlevent.DocumentParseError{Message: fmt.Sprintf("unexpected end of events: %d element(s) not closed", depth)}
		o.sink.Record(diag.Diagnostic{
			Kind:     diag.KindDocumentParse,
			Severity: diag.SeverityError,
			Message:  err.Message,
		})
		return p, fmt.Errorf("parse profile: %w", err)
	}

	return p, nil
}
