package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// element is a minimal DOM node: enough to answer "all elements with this
// tag" and "text of the first descendant with this tag".
type element struct {
	name    string
	content []content
}

// content is either character data or a child element.
type content struct {
	text  string
	child *element
}

// document holds the element tree plus an index of elements by local name
// in document order.
type document struct {
	root   *element
	byName map[string][]*element
}

// parseDocument reads the whole XML text into memory. Any well-formedness
// problem is reported as a *MalformedDocumentError.
func parseDocument(text string) (*document, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true
	// the text is already decoded, whatever the prolog declares
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	doc := &document{byName: make(map[string][]*element)}
	var stack []*element

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local}
			if len(stack) == 0 {
				if doc.root != nil {
					return nil, malformed(dec, fmt.Errorf("junk after document element <%s>", doc.root.name))
				}
				doc.root = el
			} else {
				parent := stack[len(stack)-1]
				parent.content = append(parent.content, content{child: el})
			}
			doc.byName[el.name] = append(doc.byName[el.name], el)
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, malformed(dec, errors.New("text outside the document element"))
				}
				continue
			}
			parent := stack[len(stack)-1]
			parent.content = append(parent.content, content{text: string(t)})
		}
	}

	if doc.root == nil {
		return nil, malformed(dec, errors.New("no root element found"))
	}
	return doc, nil
}

func malformed(dec *xml.Decoder, err error) error {
	line := 0
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		line = syntax.Line
	} else {
		line, _ = dec.InputPos()
	}
	return &MalformedDocumentError{Line: line, Err: err}
}

// elements returns every element with the local name, in document order.
func (d *document) elements(name string) []*element {
	return d.byName[name]
}

// first returns the first descendant with the given name in document
// order, or nil.
func (e *element) first(name string) *element {
	for _, c := range e.content {
		if c.child == nil {
			continue
		}
		if c.child.name == name {
			return c.child
		}
		if found := c.child.first(name); found != nil {
			return found
		}
	}
	return nil
}

// text is the concatenated character data of the element and all its
// descendants.
func (e *element) text() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *element) writeText(b *strings.Builder) {
	for _, c := range e.content {
		if c.child != nil {
			c.child.writeText(b)
		} else {
			b.WriteString(c.text)
		}
	}
}
