package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/sfprofile/profile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(p *profile.Profile) error
}

// Names lists the encodings accepted by NewEncoder.
var Names = []string{"text", "line", "json", "yaml", "dump"}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text", "":
		return NewTextEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "dump":
		return NewDumpEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected text, line, json, yaml, or dump)", name)
}

// encode runs the MarshalText/Write sequence shared by every encoder.
func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
