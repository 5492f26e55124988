package tree

import (
	"fmt"
	"strings"

	"github.com/dhamidi/sfprofile/xmlevent"
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Child is one of *Element, Text, CData or Comment.
type Child interface {
	isChild()
}

type Text string

type CData string

type Comment string

func (Text) isChild()     {}
func (CData) isChild()    {}
func (Comment) isChild()  {}
func (*Element) isChild() {}

// Element is a node of the document tree. It owns its children and keeps no
// reference to its parent.
type Element struct {
	Name     string
	Attrs    []xmlevent.Attr
	Children []Child
	Pos      Position
}

func (e *Element) AddChild(child Child) {
	if child != nil {
		e.Children = append(e.Children, child)
	}
}

// Elements returns the direct element children in document order.
func (e *Element) Elements() []*Element {
	var result []*Element
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			result = append(result, el)
		}
	}
	return result
}

func (e *Element) FirstChildNamed(name string) *Element {
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok && el.Name == name {
			return el
		}
	}
	return nil
}

func (e *Element) ChildrenNamed(name string) []*Element {
	var result []*Element
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok && el.Name == name {
			result = append(result, el)
		}
	}
	return result
}

func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) String() string {
	var sb strings.Builder
	e.writeIndent(&sb, 0)
	return sb.String()
}

func (e *Element) writeIndent(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(sb, "%s%s [%s]\n", prefix, e.Name, e.Pos)
	for _, child := range e.Children {
		switch c := child.(type) {
		case *Element:
			c.writeIndent(sb, indent+1)
		case Text:
			fmt.Fprintf(sb, "%s  text %q\n", prefix, string(c))
		case CData:
			fmt.Fprintf(sb, "%s  cdata %q\n", prefix, string(c))
		case Comment:
			fmt.Fprintf(sb, "%s  comment %q\n", prefix, string(c))
		}
	}
}
