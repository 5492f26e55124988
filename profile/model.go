package profile

import (
	"fmt"
	"strings"
)

type FieldPermission struct {
	Field    string `json:"field" yaml:"field"`
	Readable bool   `json:"readable" yaml:"readable"`
	Editable bool   `json:"editable" yaml:"editable"`
}

type ObjectPermission struct {
	Object           string `json:"object" yaml:"object"`
	AllowRead        bool   `json:"allowRead" yaml:"allowRead"`
	AllowCreate      bool   `json:"allowCreate" yaml:"allowCreate"`
	AllowEdit        bool   `json:"allowEdit" yaml:"allowEdit"`
	AllowDelete      bool   `json:"allowDelete" yaml:"allowDelete"`
	ViewAllRecords   bool   `json:"viewAllRecords" yaml:"viewAllRecords"`
	ModifyAllRecords bool   `json:"modifyAllRecords" yaml:"modifyAllRecords"`
}

type RecordTypeVisibility struct {
	RecordType string `json:"recordType" yaml:"recordType"`
	Default    bool   `json:"default" yaml:"default"`
	Visible    bool   `json:"visible" yaml:"visible"`
}

// Profile aggregates the access-control records of one document. The
// collections only grow, in document order.
type Profile struct {
	Name                   string                 `json:"name,omitempty" yaml:"name,omitempty"`
	UserLicense            string                 `json:"userLicense,omitempty" yaml:"userLicense,omitempty"`
	FieldPermissions       []FieldPermission      `json:"fieldPermissions,omitempty" yaml:"fieldPermissions,omitempty"`
	ObjectPermissions      []ObjectPermission     `json:"objectPermissions,omitempty" yaml:"objectPermissions,omitempty"`
	RecordTypeVisibilities []RecordTypeVisibility `json:"recordTypeVisibilities,omitempty" yaml:"recordTypeVisibilities,omitempty"`
}

func New(name string) *Profile {
	return &Profile{Name: name}
}

// SetUserLicense overwrites the license unless text is empty.
func (p *Profile) SetUserLicense(text string) {
	if text == "" {
		return
	}
	p.UserLicense = text
}

func (p *Profile) PushFieldPerms(perms []FieldPermission) int {
	if len(perms) == 0 {
		return 0
	}
	p.FieldPermissions = append(p.FieldPermissions, perms...)
	return len(perms)
}

func (p *Profile) PushObjectPerms(perms []ObjectPermission) int {
	if len(perms) == 0 {
		return 0
	}
	p.ObjectPermissions = append(p.ObjectPermissions, perms...)
	return len(perms)
}

func (p *Profile) PushRecordTypes(visibilities []RecordTypeVisibility) int {
	if len(visibilities) == 0 {
		return 0
	}
	p.RecordTypeVisibilities = append(p.RecordTypeVisibilities, visibilities...)
	return len(visibilities)
}

// FieldPermission returns the last permission recorded for field.
func (p *Profile) FieldPermission(field string) (FieldPermission, bool) {
	for i := len(p.FieldPermissions) - 1; i >= 0; i-- {
		if p.FieldPermissions[i].Field == field {
			return p.FieldPermissions[i], true
		}
	}
	return FieldPermission{}, false
}

// ObjectPermission returns the last permission recorded for object.
func (p *Profile) ObjectPermission(object string) (ObjectPermission, bool) {
	for i := len(p.ObjectPermissions) - 1; i >= 0; i-- {
		if p.ObjectPermissions[i].Object == object {
			return p.ObjectPermissions[i], true
		}
	}
	return ObjectPermission{}, false
}

// RecordTypeVisibility returns the last visibility recorded for recordType.
func (p *Profile) RecordTypeVisibility(recordType string) (RecordTypeVisibility, bool) {
	for i := len(p.RecordTypeVisibilities) - 1; i >= 0; i-- {
		if p.RecordTypeVisibilities[i].RecordType == recordType {
			return p.RecordTypeVisibilities[i], true
		}
	}
	return RecordTypeVisibility{}, false
}

type Counts struct {
	FieldPermissions       int
	ObjectPermissions      int
	RecordTypeVisibilities int
}

func (p *Profile) Counts() Counts {
	return Counts{
		FieldPermissions:       len(p.FieldPermissions),
		ObjectPermissions:      len(p.ObjectPermissions),
		RecordTypeVisibilities: len(p.RecordTypeVisibilities),
	}
}

// Render formats the profile for reading. The output is stable for a given
// profile but is not meant to be parsed back.
func (p *Profile) Render() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Profile: %s\n", p.Name)
	fmt.Fprintf(&sb, "User License: %s\n", p.UserLicense)

	if len(p.FieldPermissions) > 0 {
		fmt.Fprintf(&sb, "\nField Permissions (%d)\n", len(p.FieldPermissions))
		for _, fp := range p.FieldPermissions {
			fmt.Fprintf(&sb, "  %s readable=%t editable=%t\n", fp.Field, fp.Readable, fp.Editable)
		}
	}

	if len(p.ObjectPermissions) > 0 {
		fmt.Fprintf(&sb, "\nObject Permissions (%d)\n", len(p.ObjectPermissions))
		for _, op := range p.ObjectPermissions {
			fmt.Fprintf(&sb, "  %s read=%t create=%t edit=%t delete=%t viewAll=%t modifyAll=%t\n",
				op.Object,
				op.AllowRead,
				op.AllowCreate,
				op.AllowEdit,
				op.AllowDelete,
				op.ViewAllRecords,
				op.ModifyAllRecords,
			)
		}
	}

	if len(p.RecordTypeVisibilities) > 0 {
		fmt.Fprintf(&sb, "\nRecord Type Visibilities (%d)\n", len(p.RecordTypeVisibilities))
		for _, rt := range p.RecordTypeVisibilities {
			fmt.Fprintf(&sb, "  %s default=%t visible=%t\n", rt.RecordType, rt.Default, rt.Visible)
		}
	}

	return sb.String()
}
