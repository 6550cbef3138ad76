// Where: internal/domain/settings/document.go
// What: Order-preserving model of the proxy settings JSON document.
// Why: Rewrite extMimeTypes without disturbing the rest of the file.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/poruru/mimesort/internal/meta"
)

var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

type member struct {
	key string
	raw []byte
}

// Document is a top-level JSON object whose members keep their file order.
// Member values are held as compact raw JSON and are only decoded on demand.
type Document struct {
	members []member
	index   map[string]int
}

// Parse decodes a settings document. It fails with ErrFormat for invalid JSON
// and with ErrShape when the top-level value is not an object or the
// extMimeTypes member is missing or malformed.
func Parse(data []byte) (*Document, error) {
	generic, err := decodeStrict(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if _, ok := generic.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: top-level value is %s, want object", ErrShape, kindOf(generic))
	}
	if err := validateShape(generic); err != nil {
		return nil, err
	}

	doc := &Document{index: map[string]int{}}
	iter := jsoniter.ParseBytes(jsonAPI, data)
	var walkErr error
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		raw := it.SkipAndReturnBytes()
		if it.Error != nil {
			return false
		}
		compact, err := compactJSON(raw)
		if err != nil {
			walkErr = err
			return false
		}
		doc.set(key, compact)
		return true
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: member value: %w", ErrFormat, walkErr)
	}
	if iter.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, iter.Error)
	}
	return doc, nil
}

// Keys returns the top-level member names in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.members))
	for _, m := range d.members {
		keys = append(keys, m.key)
	}
	return keys
}

// Raw returns the compact JSON value of a top-level member.
func (d *Document) Raw(key string) ([]byte, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.members[i].raw, true
}

// MimeTypes decodes the extMimeTypes member in document order.
// Duplicate extensions collapse to their last value. Strings that cannot be
// re-encoded verbatim as UTF-8 are rejected.
func (d *Document) MimeTypes() (MimeTable, error) {
	raw, ok := d.Raw(meta.MimeTypesKey)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrShape, meta.MimeTypesKey)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: %q contains invalid UTF-8", ErrShape, meta.MimeTypesKey)
	}
	if hasUnpairedSurrogate(raw) {
		return nil, fmt.Errorf("%w: %q contains an unpaired UTF-16 surrogate escape", ErrShape, meta.MimeTypesKey)
	}
	iter := jsoniter.ParseBytes(jsonAPI, raw)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("%w: %q is not an object", ErrShape, meta.MimeTypesKey)
	}

	table := MimeTable{}
	seen := map[string]int{}
	var shapeErr error
	iter.ReadObjectCB(func(it *jsoniter.Iterator, ext string) bool {
		if it.WhatIsNext() != jsoniter.StringValue {
			shapeErr = fmt.Errorf("%w: %s.%s is not a string", ErrShape, meta.MimeTypesKey, ext)
			return false
		}
		mime := it.ReadString()
		if i, dup := seen[ext]; dup {
			table[i].Mime = mime
			return true
		}
		seen[ext] = len(table)
		table = append(table, Entry{Ext: ext, Mime: mime})
		return true
	})
	if shapeErr != nil {
		return nil, shapeErr
	}
	if iter.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, iter.Error)
	}
	return table, nil
}

// SetMimeTypes replaces the extMimeTypes member, keeping its position.
func (d *Document) SetMimeTypes(table MimeTable) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range table {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, entry.Ext, entry.Mime); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	d.set(meta.MimeTypesKey, buf.Bytes())
	return nil
}

// GzippedTypes decodes the optional extGzippedTypes list.
func (d *Document) GzippedTypes() ([]string, error) {
	raw, ok := d.Raw(meta.GzippedTypesKey)
	if !ok {
		return nil, nil
	}
	var types []string
	if err := jsonAPI.Unmarshal(raw, &types); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrShape, meta.GzippedTypesKey, err)
	}
	return types, nil
}

// Encode serializes the document with the given indent width and a trailing
// newline. An indent of zero produces compact output.
func (d *Document) Encode(indent int) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, m := range d.members {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := jsonAPI.Marshal(m.key)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", m.key, err)
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(m.raw)
	}
	compact.WriteByte('}')

	if indent <= 0 {
		return append(compact.Bytes(), '\n'), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return nil, fmt.Errorf("indent document: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// set stores a member. Existing keys keep their first position and take the new value.
func (d *Document) set(key string, raw []byte) {
	if d.index == nil {
		d.index = map[string]int{}
	}
	if i, ok := d.index[key]; ok {
		d.members[i].raw = raw
		return
	}
	d.index[key] = len(d.members)
	d.members = append(d.members, member{key: key, raw: raw})
}

func writeMember(buf *bytes.Buffer, key, value string) error {
	k, err := jsonAPI.Marshal(key)
	if err != nil {
		return fmt.Errorf("encode key %q: %w", key, err)
	}
	v, err := jsonAPI.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// decodeStrict decodes exactly one JSON value. Numbers stay json.Number so
// values outside float64 range are still accepted.
func decodeStrict(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid data after top-level value at offset %d", dec.InputOffset())
	}
	return generic, nil
}

// hasUnpairedSurrogate scans compact JSON for \uD800-\uDFFF escapes that do
// not form a high/low pair.
func hasUnpairedSurrogate(raw []byte) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		if i+1 >= len(raw) || raw[i+1] != 'u' {
			i++
			continue
		}
		r, ok := escapedRune(raw, i)
		if !ok {
			return false
		}
		i += 5
		switch {
		case r >= 0xDC00 && r <= 0xDFFF:
			return true
		case r >= 0xD800 && r <= 0xDBFF:
			low, ok := escapedRune(raw, i+1)
			if !ok || low < 0xDC00 || low > 0xDFFF {
				return true
			}
			i += 6
		}
	}
	return false
}

// escapedRune decodes the \uXXXX escape starting at raw[i].
func escapedRune(raw []byte, i int) (rune, bool) {
	if i+6 > len(raw) || raw[i] != '\\' || raw[i+1] != 'u' {
		return 0, false
	}
	var r rune
	for _, c := range raw[i+2 : i+6] {
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, false
		}
	}
	return r, true
}

func compactJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}
