package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnoseCleanDocument(t *testing.T) {
	doc := `<Profile><userLicense>Salesforce</userLicense>` +
		`<fieldPermissions><field>Account.Name</field><readable>true</readable><editable>false</editable></fieldPermissions>` +
		`</Profile>`

	diags := Diagnose("file:///tmp/Admin.profile", doc)
	if diags == nil {
		t.Fatal("Diagnose returned nil, want empty slice")
	}
	if len(diags) != 0 {
		t.Errorf("got %d diagnostics, want 0: %+v", len(diags), diags)
	}
}

func TestDiagnoseMismatchedTag(t *testing.T) {
	doc := "<Profile>\n  <userLicense>Gold</Profile>"

	diags := Diagnose("file:///tmp/Admin.profile", doc)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(diags), diags)
	}

	d := diags[0]
	if *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v, want error", *d.Severity)
	}
	if d.Range.Start.Line != 1 {
		t.Errorf("line = %d, want 1", d.Range.Start.Line)
	}
	if d.Code == nil || d.Code.Value != "mismatched-tag" {
		t.Errorf("code = %+v, want mismatched-tag", d.Code)
	}
}

func TestDiagnoseSeverities(t *testing.T) {
	doc := "<Profile>\n" +
		"  <custom>false</custom>\n" +
		"  <fieldPermissions><field>A.b</field><readable>yes</readable><bogus/></fieldPermissions>\n" +
		"</Profile>"

	diags := Diagnose("file:///tmp/Admin.profile", doc)

	got := map[string]protocol.DiagnosticSeverity{}
	for _, d := range diags {
		got[d.Code.Value.(string)] = *d.Severity
	}

	want := map[string]protocol.DiagnosticSeverity{
		"schema-mismatch": protocol.DiagnosticSeverityWarning,
		"value-coercion":  protocol.DiagnosticSeverityInformation,
	}
	for code, sev := range want {
		if got[code] != sev {
			t.Errorf("%s severity = %v, want %v (all: %+v)", code, got[code], sev, diags)
		}
	}
	if len(diags) != 3 {
		t.Errorf("got %d diagnostics, want 3", len(diags))
	}
}

func TestToRange(t *testing.T) {
	doc := "<Profile>\n  <custom>false</custom>\n</Profile>"

	diags := Diagnose("file:///tmp/Admin.profile", doc)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}

	r := diags[0].Range
	if r.Start.Line != 1 || r.Start.Character != 2 || r.End.Character != 9 {
		t.Errorf("range = %+v, want line 1 chars 2-9", r)
	}
	if *diags[0].Severity != protocol.DiagnosticSeverityHint {
		t.Errorf("severity = %v, want hint", *diags[0].Severity)
	}
}

func TestNameFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/me/profiles/Accounting.profile", "Accounting"},
		{"file:///tmp/Custom%3A%20Sales.profile", "Custom: Sales"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := nameFromURI(tt.uri); got != tt.want {
				t.Errorf("nameFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}
