package profile

import (
	"fmt"
	"strings"

	"github.com/dhamidi/sfprofile/diag"
	"github.com/dhamidi/sfprofile/tree"
)

const trueLiteral = "true"

// ParseBool reports whether s is exactly "true". Anything else, including
// "TRUE", "1" and "", is false.
func ParseBool(s string) bool {
	return s == trueLiteral
}

// ElementValue concatenates the direct text children of el. CDATA sections
// and nested elements do not contribute.
func ElementValue(el *tree.Element) string {
	return elementValue(el, diag.Discard)
}

func elementValue(el *tree.Element, sink diag.Sink) string {
	var sb strings.Builder
	for _, child := range el.Children {
		switch c := child.(type) {
		case tree.Text:
			sb.WriteString(string(c))
		case tree.CData:
			sink.Record(diag.Diagnostic{
				Kind:     diag.KindNonElementChild,
				Severity: diag.SeverityInfo,
				Element:  el.Name,
				Message:  "CDATA section ignored in value",
				Line:     el.Pos.Line,
				Column:   el.Pos.Column,
			})
		case *tree.Element:
			sink.Record(diag.Diagnostic{
				Kind:     diag.KindSchemaMismatch,
				Severity: diag.SeverityWarning,
				Element:  el.Name,
				Message:  fmt.Sprintf("nested element <%s> ignored in value", c.Name),
				Line:     c.Pos.Line,
				Column:   c.Pos.Column,
			})
		}
	}
	return sb.String()
}

// binding assigns the value of one child element to a record field. Exactly
// one of text and flag is set.
type binding[T any] struct {
	text func(*T) *string
	flag func(*T) *bool
}

func textField[T any](f func(*T) *string) binding[T] { return binding[T]{text: f} }
func flagField[T any](f func(*T) *bool) binding[T]   { return binding[T]{flag: f} }

var fieldPermissionBindings = map[string]binding[FieldPermission]{
	"field":    textField(func(fp *FieldPermission) *string { return &fp.Field }),
	"readable": flagField(func(fp *FieldPermission) *bool { return &fp.Readable }),
	"editable": flagField(func(fp *FieldPermission) *bool { return &fp.Editable }),
}

var objectPermissionBindings = map[string]binding[ObjectPermission]{
	"object":           textField(func(op *ObjectPermission) *string { return &op.Object }),
	"allowRead":        flagField(func(op *ObjectPermission) *bool { return &op.AllowRead }),
	"allowCreate":      flagField(func(op *ObjectPermission) *bool { return &op.AllowCreate }),
	"allowEdit":        flagField(func(op *ObjectPermission) *bool { return &op.AllowEdit }),
	"allowDelete":      flagField(func(op *ObjectPermission) *bool { return &op.AllowDelete }),
	"viewAllRecords":   flagField(func(op *ObjectPermission) *bool { return &op.ViewAllRecords }),
	"modifyAllRecords": flagField(func(op *ObjectPermission) *bool { return &op.ModifyAllRecords }),
}

var recordTypeVisibilityBindings = map[string]binding[RecordTypeVisibility]{
	"recordType": textField(func(rt *RecordTypeVisibility) *string { return &rt.RecordType }),
	"default":    flagField(func(rt *RecordTypeVisibility) *bool { return &rt.Default }),
	"visible":    flagField(func(rt *RecordTypeVisibility) *bool { return &rt.Visible }),
}

func FieldPermissionFromElement(el *tree.Element, sink diag.Sink) FieldPermission {
	return convert(el, fieldPermissionBindings, sink)
}

func ObjectPermissionFromElement(el *tree.Element, sink diag.Sink) ObjectPermission {
	return convert(el, objectPermissionBindings, sink)
}

func RecordTypeVisibilityFromElement(el *tree.Element, sink diag.Sink) RecordTypeVisibility {
	return convert(el, recordTypeVisibilityBindings, sink)
}

// convert never fails. Fields whose element is missing, unknown or
// malformed keep their zero value.
func convert[T any](el *tree.Element, bindings map[string]binding[T], sink diag.Sink) T {
	if sink == nil {
		sink = diag.Discard
	}

	var out T
	for _, child := range el.Children {
		c, ok := child.(*tree.Element)
		if !ok {
			recordNonElement(el, child, sink)
			continue
		}

		b, ok := bindings[c.Name]
		if !ok {
			sink.Record(diag.Diagnostic{
				Kind:     diag.KindSchemaMismatch,
				Severity: diag.SeverityWarning,
				Element:  c.Name,
				Message:  fmt.Sprintf("unknown element in <%s> skipped", el.Name),
				Line:     c.Pos.Line,
				Column:   c.Pos.Column,
			})
			continue
		}

		value := elementValue(c, sink)
		if b.text != nil {
			*b.text(&out) = value
			continue
		}
		*b.flag(&out) = coerceBool(c, value, sink)
	}
	return out
}

func coerceBool(el *tree.Element, value string, sink diag.Sink) bool {
	if value != trueLiteral && value != "false" {
		sink.Record(diag.Diagnostic{
			Kind:     diag.KindValueCoercion,
			Severity: diag.SeverityInfo,
			Element:  el.Name,
			Message:  fmt.Sprintf("%q is not a boolean literal, using false", value),
			Line:     el.Pos.Line,
			Column:   el.Pos.Column,
		})
	}
	return ParseBool(value)
}

func recordNonElement(parent *tree.Element, child tree.Child, sink diag.Sink) {
	severity := diag.SeverityDebug
	var what string
	switch c := child.(type) {
	case tree.Text:
		what = "text"
		if strings.TrimSpace(string(c)) != "" {
			severity = diag.SeverityWarning
		}
	case tree.CData:
		what = "CDATA section"
		severity = diag.SeverityWarning
	case tree.Comment:
		what = "comment"
	}
	sink.Record(diag.Diagnostic{
		Kind:     diag.KindNonElementChild,
		Severity: severity,
		Element:  parent.Name,
		Message:  what + " skipped",
		Line:     parent.Pos.Line,
		Column:   parent.Pos.Column,
	})
}
