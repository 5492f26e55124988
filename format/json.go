package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sfprofile/profile"
)

type JSONEncoder struct {
	w       io.Writer
	profile *profile.Profile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(p *profile.Profile) error {
	e.profile = p
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.profile, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
