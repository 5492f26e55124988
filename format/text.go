package format

import (
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/dhamidi/sfprofile/profile"
)

// TextEncoder writes Profile.Render output.
type TextEncoder struct {
	w       io.Writer
	profile *profile.Profile
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(p *profile.Profile) error {
	e.profile = p
	return encode(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	return []byte(e.profile.Render()), nil
}

// DumpEncoder writes the Go representation of the profile for debugging.
type DumpEncoder struct {
	w       io.Writer
	profile *profile.Profile
	config  *spew.ConfigState
}

func NewDumpEncoder(w io.Writer) *DumpEncoder {
	return &DumpEncoder{
		w: w,
		config: &spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}
}

func (e *DumpEncoder) Encode(p *profile.Profile) error {
	e.profile = p
	return encode(e.w, e)
}

func (e *DumpEncoder) MarshalText() ([]byte, error) {
	return []byte(e.config.Sdump(e.profile)), nil
}
