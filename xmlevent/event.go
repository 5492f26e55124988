package xmlevent

import "fmt"

// Kind identifies the variant carried by an Event.
type Kind int

const (
	KindStartTag Kind = iota
	KindEndTag
	KindText
	KindCData
	KindComment
	KindError
)

var kindNames = map[Kind]string{
	KindStartTag: "StartTag",
	KindEndTag:   "EndTag",
	KindText:     "Text",
	KindCData:    "CData",
	KindComment:  "Comment",
	KindError:    "Error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Attr struct {
	Name  string
	Value string
}

// Event is a single parse event. Name and Attrs are set for tags, Content
// for text, CDATA, comments and errors. Line and Column locate the start of
// the event in the document and are 1-based.
type Event struct {
	Kind    Kind
	Name    string
	Attrs   []Attr
	Content string
	Line    int
	Column  int
}

func StartTag(name string, attrs ...Attr) Event {
	return Event{Kind: KindStartTag, Name: name, Attrs: attrs}
}

func EndTag(name string) Event {
	return Event{Kind: KindEndTag, Name: name}
}

func Text(content string) Event {
	return Event{Kind: KindText, Content: content}
}

func CData(content string) Event {
	return Event{Kind: KindCData, Content: content}
}

func Comment(content string) Event {
	return Event{Kind: KindComment, Content: content}
}

func Error(line, column int, message string) Event {
	return Event{Kind: KindError, Content: message, Line: line, Column: column}
}

// At returns a copy of the event positioned at line and column.
func (e Event) At(line, column int) Event {
	e.Line = line
	e.Column = column
	return e
}

func (e Event) String() string {
	switch e.Kind {
	case KindStartTag:
		return fmt.Sprintf("<%s>", e.Name)
	case KindEndTag:
		return fmt.Sprintf("</%s>", e.Name)
	case KindError:
		return fmt.Sprintf("error %d:%d: %s", e.Line, e.Column, e.Content)
	default:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Content)
	}
}

// DocumentParseError reports malformed document text. It is fatal for the
// parse that produced it.
type DocumentParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("line %d column %d: %s", e.Line, e.Column, e.Message)
}
