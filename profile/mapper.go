package profile

import (
	"fmt"

	"github.com/dhamidi/sfprofile/diag"
	"github.com/dhamidi/sfprofile/tree"
)

const (
	rootElement                   = "Profile"
	fieldPermissionsElement       = "fieldPermissions"
	objectPermissionsElement      = "objectPermissions"
	recordTypeVisibilitiesElement = "recordTypeVisibilities"
	userLicenseElement            = "userLicense"
)

// Mapper decodes completed top-level elements into a Profile.
type Mapper struct {
	profile *Profile
	sink    diag.Sink
}

func NewMapper(p *Profile, sink diag.Sink) *Mapper {
	if sink == nil {
		sink = diag.Discard
	}
	return &Mapper{profile: p, sink: sink}
}

func (m *Mapper) Profile() *Profile {
	return m.profile
}

// Emit maps el and never fails. It has the shape of tree.EmitFunc.
func (m *Mapper) Emit(el *tree.Element) error {
	m.MapElement(el)
	return nil
}

func (m *Mapper) MapElement(el *tree.Element) {
	if el.Name == rootElement {
		m.mapProfile(el)
		return
	}
	m.traverse(el)
}

func (m *Mapper) mapProfile(el *tree.Element) {
	m.sink.Record(diag.Diagnostic{
		Kind:     diag.KindTrace,
		Severity: diag.SeverityDebug,
		Element:  el.Name,
		Message:  "root found",
		Line:     el.Pos.Line,
		Column:   el.Pos.Column,
	})

	var (
		fields      []FieldPermission
		objects     []ObjectPermission
		recordTypes []RecordTypeVisibility
		licenses    []string
	)

	for _, child := range el.Children {
		c, ok := child.(*tree.Element)
		if !ok {
			recordNonElement(el, child, m.sink)
			continue
		}

		switch c.Name {
		case fieldPermissionsElement:
			fields = append(fields, FieldPermissionFromElement(c, m.sink))
		case objectPermissionsElement:
			objects = append(objects, ObjectPermissionFromElement(c, m.sink))
		case recordTypeVisibilitiesElement:
			recordTypes = append(recordTypes, RecordTypeVisibilityFromElement(c, m.sink))
		case userLicenseElement:
			licenses = append(licenses, elementValue(c, m.sink))
		default:
			m.sink.Record(diag.Diagnostic{
				Kind:     diag.KindSchemaMismatch,
				Severity: diag.SeverityInfo,
				Element:  c.Name,
				Message:  "not mapped",
				Line:     c.Pos.Line,
				Column:   c.Pos.Column,
			})
			m.traverse(c)
		}
	}

	for _, license := range licenses {
		m.profile.SetUserLicense(license)
	}

	m.summarize(el, "field permissions", m.profile.PushFieldPerms(fields))
	m.summarize(el, "object permissions", m.profile.PushObjectPerms(objects))
	m.summarize(el, "record type visibilities", m.profile.PushRecordTypes(recordTypes))
}

func (m *Mapper) summarize(el *tree.Element, what string, n int) {
	if n == 0 {
		return
	}
	m.sink.Record(diag.Diagnostic{
		Kind:     diag.KindSummary,
		Severity: diag.SeverityInfo,
		Element:  el.Name,
		Message:  fmt.Sprintf("%d %s", n, what),
		Line:     el.Pos.Line,
		Column:   el.Pos.Column,
	})
}

// traverse walks an element that has no schema mapping and records what it
// contains.
func (m *Mapper) traverse(el *tree.Element) {
	m.sink.Record(diag.Diagnostic{
		Kind:     diag.KindTrace,
		Severity: diag.SeverityDebug,
		Element:  el.Name,
		Message:  "element",
		Line:     el.Pos.Line,
		Column:   el.Pos.Column,
	})

	for _, child := range el.Children {
		var msg string
		switch c := child.(type) {
		case *tree.Element:
			m.traverse(c)
			continue
		case tree.Text:
			msg = fmt.Sprintf("text %q", string(c))
		case tree.CData:
			msg = fmt.Sprintf("cdata %q", string(c))
		case tree.Comment:
			msg = fmt.Sprintf("comment %q", string(c))
		}
		m.sink.Record(diag.Diagnostic{
			Kind:     diag.KindTrace,
			Severity: diag.SeverityDebug,
			Element:  el.Name,
			Message:  msg,
			Line:     el.Pos.Line,
			Column:   el.Pos.Column,
		})
	}
}
