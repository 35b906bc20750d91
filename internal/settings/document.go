// Package settings holds the host application's settings file as an untyped
// JSON document so that keys ccgadget does not own survive a load/save cycle.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// HooksKey is the top-level key holding hook configuration
const HooksKey = "hooks"

var (
	// ErrNotObject is returned when the document root is not a JSON object
	ErrNotObject = errors.New("settings root is not a JSON object")
	// ErrHooksNotObject is returned when the hooks value is present but not an object
	ErrHooksNotObject = errors.New(`"hooks" is not a JSON object`)
)

// Document is a parsed settings file. Numbers are kept as json.Number so
// foreign values are written back exactly as they were read.
type Document struct {
	root map[string]any
}

// New returns an empty document
func New() *Document {
	return &Document{root: make(map[string]any)}
}

// Parse decodes data into a Document. Blank input yields an empty document.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: unexpected data after top-level value")
	}

	root, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return &Document{root: root}, nil
}

// Root exposes the underlying object
func (d *Document) Root() map[string]any {
	return d.root
}

// Hooks returns the hooks object. The boolean reports whether the key exists.
func (d *Document) Hooks() (map[string]any, bool, error) {
	raw, ok := d.root[HooksKey]
	if !ok {
		return nil, false, nil
	}
	hooks, isObj := raw.(map[string]any)
	if !isObj {
		return nil, true, ErrHooksNotObject
	}
	return hooks, true, nil
}

// EnsureHooks returns the hooks object, creating it when absent.
func (d *Document) EnsureHooks() (map[string]any, error) {
	hooks, ok, err := d.Hooks()
	if err != nil {
		return nil, err
	}
	if !ok {
		hooks = make(map[string]any)
		d.root[HooksKey] = hooks
	}
	return hooks, nil
}

// Event returns the raw value configured for an event
func (d *Document) Event(event string) (any, bool) {
	hooks, _, err := d.Hooks()
	if err != nil || hooks == nil {
		return nil, false
	}
	v, ok := hooks[event]
	return v, ok
}

// SetEvent replaces the group list for an event
func (d *Document) SetEvent(event string, groups []any) error {
	hooks, err := d.EnsureHooks()
	if err != nil {
		return err
	}
	hooks[event] = groups
	return nil
}

// Marshal renders the document with two-space indentation and a trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// commands routinely contain && and > which must stay readable
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return buf.Bytes(), nil
}
