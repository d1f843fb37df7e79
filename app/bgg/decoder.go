package bgg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"
	"golang.org/x/text/encoding/htmlindex"
)

// TextKey holds the text content of an element that also carries attributes or children.
const TextKey = "#text"

type xmlFrame struct {
	path   string
	fields map[string]any
	text   strings.Builder
}

func (f *xmlFrame) add(name, path string, value any, arrayPaths map[string]bool) {
	existing, ok := f.fields[name]
	switch {
	case ok:
		if list, isList := existing.([]any); isList {
			f.fields[name] = append(list, value)
		} else {
			f.fields[name] = []any{existing, value}
		}
	case arrayPaths[path]:
		f.fields[name] = []any{value}
	default:
		f.fields[name] = value
	}
}

func (f *xmlFrame) value() any {
	text := strings.TrimSpace(f.text.String())
	if len(f.fields) == 0 {
		return text
	}
	if text != "" {
		f.fields[TextKey] = text
	}
	return f.fields
}

// ParseXML converts an XML document into nested maps, slices and strings.
// Attributes become sibling keys of their element's children. Elements whose
// dot-separated path (e.g. "items.item.link") is listed in arrayPaths always
// decode as []any, even when they occur once.
func ParseXML(data []byte, arrayPaths ...string) (map[string]any, error) {
	forced := make(map[string]bool, len(arrayPaths))
	for _, p := range arrayPaths {
		forced[p] = true
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charsetReader

	root := &xmlFrame{fields: make(map[string]any)}
	stack := []*xmlFrame{root}

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}

		parent := stack[len(stack)-1]

		switch t := token.(type) {
		case xml.StartElement:
			path := t.Name.Local
			if parent != root {
				path = parent.path + "." + t.Name.Local
			}

			frame := &xmlFrame{path: path, fields: make(map[string]any)}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				frame.fields[attr.Name.Local] = attr.Value
			}
			stack = append(stack, frame)

		case xml.EndElement:
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].add(t.Name.Local, parent.path, parent.value(), forced)

		case xml.CharData:
			if parent == root {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("%w: text outside of root element", ErrBadResponse)
				}
				continue
			}
			parent.text.Write(t)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: unexpected end of document", ErrBadResponse)
	}

	return root.fields, nil
}

// DecodeXML parses data with ParseXML and maps the tree onto T using `xml` struct tags.
func DecodeXML[T any](data []byte, arrayPaths ...string) (*T, error) {
	tree, err := ParseXML(data, arrayPaths...)
	if err != nil {
		return nil, err
	}

	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "xml",
		WeaklyTypedInput: true,
		DecodeHook:       emptyElementHook,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return &out, nil
}

// DecodeJSON unmarshals a JSON document into T.
func DecodeJSON[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &out, nil
}

// emptyElementHook lets empty elements such as <items/> decode into structs and slices.
func emptyElementHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if s, ok := data.(string); !ok || s != "" {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Struct, reflect.Map:
		return map[string]any{}, nil
	case reflect.Slice:
		return []any{}, nil
	}

	return data, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
