package xmlevent

import (
	"errors"
	"strings"
	"testing"
)

func collect(t *testing.T, doc string) ([]Event, error) {
	t.Helper()
	var events []Event
	err := NewDecoder(doc).Stream(func(ev Event) error {
		events = append(events, ev)
		return nil
	})
	return events, err
}

func TestDecoderEventKinds(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Profile xmlns="http://soap.sforce.com/2006/04/metadata">` +
		`<!-- generated --><userLicense>Gold</userLicense><x><![CDATA[raw <b>]]></x></Profile>`

	events, err := collect(t, doc)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	want := []struct {
		kind    Kind
		name    string
		content string
	}{
		{KindStartTag, "Profile", ""},
		{KindComment, "", " generated "},
		{KindStartTag, "userLicense", ""},
		{KindText, "", "Gold"},
		{KindEndTag, "userLicense", ""},
		{KindStartTag, "x", ""},
		{KindCData, "", "raw <b>"},
		{KindEndTag, "x", ""},
		{KindEndTag, "Profile", ""},
	}

	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(events), len(want), events)
	}
	for i, w := range want {
		ev := events[i]
		if ev.Kind != w.kind || ev.Name != w.name || ev.Content != w.content {
			t.Errorf("event %d = %v, want kind=%s name=%q content=%q", i, ev, w.kind, w.name, w.content)
		}
	}

	if len(events[0].Attrs) != 1 || events[0].Attrs[0].Name != "xmlns" {
		t.Errorf("Profile attrs = %v, want xmlns", events[0].Attrs)
	}
}

func TestDecoderPositions(t *testing.T) {
	events, err := collect(t, "<a>\n  <b>x</b>\n</a>")
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	if events[0].Line != 1 || events[0].Column != 1 {
		t.Errorf("<a> at %d:%d, want 1:1", events[0].Line, events[0].Column)
	}
	if events[2].Kind != KindStartTag || events[2].Name != "b" {
		t.Fatalf("event 2 = %v, want <b>", events[2])
	}
	if events[2].Line != 2 || events[2].Column != 3 {
		t.Errorf("<b> at %d:%d, want 2:3", events[2].Line, events[2].Column)
	}
}

func TestDecoderSelfClosing(t *testing.T) {
	events, err := collect(t, "<a><b/></a>")
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	var got []string
	for _, ev := range events {
		got = append(got, ev.String())
	}
	if strings.Join(got, "") != "<a><b></b></a>" {
		t.Errorf("events = %v", got)
	}
}

func TestDecoderUnclosedTag(t *testing.T) {
	events, err := collect(t, "<Profile>\n<userLicense>Gold</userLicense>")

	var parseErr *DocumentParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want *DocumentParseError", err)
	}
	if parseErr.Line != 2 {
		t.Errorf("Line = %d, want 2", parseErr.Line)
	}
	if !strings.Contains(parseErr.Message, "Profile") {
		t.Errorf("Message = %q, want mention of Profile", parseErr.Message)
	}

	last := events[len(events)-1]
	if last.Kind != KindError {
		t.Errorf("last event = %v, want Error", last)
	}
}

func TestDecoderSyntaxError(t *testing.T) {
	events, err := collect(t, "<a><b</a>")

	var parseErr *DocumentParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want *DocumentParseError", err)
	}
	if parseErr.Line != 1 || parseErr.Column < 1 {
		t.Errorf("position = %d:%d, want line 1 and a column", parseErr.Line, parseErr.Column)
	}
	if events[len(events)-1].Kind != KindError {
		t.Errorf("last event = %v, want Error", events[len(events)-1])
	}
}

func TestDecoderHandlerErrorStops(t *testing.T) {
	stop := errors.New("stop")
	count := 0
	err := NewDecoder("<a><b/><c/></a>").Stream(func(ev Event) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("err = %v, want stop", err)
	}
	if count != 2 {
		t.Errorf("handler called %d times, want 2", count)
	}
}

func TestDecoderNotRestartable(t *testing.T) {
	d := NewDecoder("<a/>")
	if err := d.Stream(func(Event) error { return nil }); err != nil {
		t.Fatalf("first Stream: %v", err)
	}
	if err := d.Stream(func(Event) error { return nil }); !errors.Is(err, ErrConsumed) {
		t.Errorf("second Stream = %v, want ErrConsumed", err)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindStartTag, "StartTag"},
		{KindCData, "CData"},
		{KindError, "Error"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}
