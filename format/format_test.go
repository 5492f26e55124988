package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/sfprofile/profile"
)

func sampleProfile() *profile.Profile {
	p := profile.New("Accounting")
	p.SetUserLicense("Salesforce")
	p.PushFieldPerms([]profile.FieldPermission{
		{Field: "Account.Name", Readable: true},
		{Field: "Account.Phone"},
	})
	p.PushObjectPerms([]profile.ObjectPermission{
		{Object: "Account", AllowRead: true, AllowEdit: true},
	})
	p.PushRecordTypes([]profile.RecordTypeVisibility{
		{RecordType: "Account.Business", Default: true, Visible: true},
	})
	return p
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := NewEncoder(name, &buf)
			if err != nil {
				t.Fatalf("NewEncoder(%q): %v", name, err)
			}
			if err := enc.Encode(sampleProfile()); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !strings.Contains(buf.String(), "Account.Business") {
				t.Errorf("%s output missing record type:\n%s", name, buf.String())
			}
		})
	}

	if _, err := NewEncoder("xml", &bytes.Buffer{}); err == nil {
		t.Error("NewEncoder(\"xml\") succeeded, want error")
	}
}

func TestTextEncoderMatchesRender(t *testing.T) {
	p := sampleProfile()
	var buf bytes.Buffer
	if err := NewTextEncoder(&buf).Encode(p); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.String() != p.Render() {
		t.Errorf("text output differs from Render:\n%s", buf.String())
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(sampleProfile()); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "profile\tAccounting\tSalesforce\n" +
		"field\tAccount.Name\tread\n" +
		"field\tAccount.Phone\t-\n" +
		"object\tAccount\tread,edit\n" +
		"recordType\tAccount.Business\tdefault,visible\n"
	if buf.String() != want {
		t.Errorf("line output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(sampleProfile()); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded profile.Profile
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.FieldPermissions[0].Field != "Account.Name" || !decoded.FieldPermissions[0].Readable {
		t.Errorf("fieldPermissions[0] = %+v", decoded.FieldPermissions[0])
	}
	if !strings.Contains(buf.String(), `"modifyAllRecords": false`) {
		t.Errorf("JSON output should keep false flags:\n%s", buf.String())
	}
}

func TestYAMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLEncoder(&buf).Encode(sampleProfile()); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if decoded["userLicense"] != "Salesforce" {
		t.Errorf("userLicense = %v", decoded["userLicense"])
	}
}

func TestDumpEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDumpEncoder(&buf).Encode(sampleProfile()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "profile.Profile") || !strings.Contains(out, `"Accounting"`) {
		t.Errorf("dump output:\n%s", out)
	}
	if strings.Contains(out, "0xc") {
		t.Errorf("dump output contains pointer addresses:\n%s", out)
	}
}
