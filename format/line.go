package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/sfprofile/profile"
)

// LineEncoder writes one tab-separated record per line, suited to grep and
// cut.
type LineEncoder struct {
	w       io.Writer
	profile *profile.Profile
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(p *profile.Profile) error {
	e.profile = p
	return encode(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	p := e.profile

	fmt.Fprintf(&sb, "profile\t%s\t%s\n", p.Name, p.UserLicense)

	for _, fp := range p.FieldPermissions {
		fmt.Fprintf(&sb, "field\t%s\t%s\n", fp.Field, flags(
			flag{"read", fp.Readable},
			flag{"edit", fp.Editable},
		))
	}

	for _, op := range p.ObjectPermissions {
		fmt.Fprintf(&sb, "object\t%s\t%s\n", op.Object, flags(
			flag{"read", op.AllowRead},
			flag{"create", op.AllowCreate},
			flag{"edit", op.AllowEdit},
			flag{"delete", op.AllowDelete},
			flag{"viewAll", op.ViewAllRecords},
			flag{"modifyAll", op.ModifyAllRecords},
		))
	}

	for _, rt := range p.RecordTypeVisibilities {
		fmt.Fprintf(&sb, "recordType\t%s\t%s\n", rt.RecordType, flags(
			flag{"default", rt.Default},
			flag{"visible", rt.Visible},
		))
	}

	return []byte(sb.String()), nil
}

type flag struct {
	name string
	set  bool
}

func flags(fs ...flag) string {
	var names []string
	for _, f := range fs {
		if f.set {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
