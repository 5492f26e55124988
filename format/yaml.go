package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/sfprofile/profile"
)

type YAMLEncoder struct {
	w       io.Writer
	profile *profile.Profile
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(p *profile.Profile) error {
	e.profile = p
	return encode(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(e.profile)
}
