package modules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/sysmod/internal/model"
)

// DocumentVersion is written into every exported document.
const DocumentVersion = 1

// ExportFileName is the name offered for downloaded exports.
const ExportFileName = "system-modules.json"

// ErrInvalidFormat is returned for unreadable or wrongly shaped imports.
var ErrInvalidFormat = errors.New("invalid module file")

// Export snapshots the list in order.
func (s *Store) Export() model.Document {
	doc := model.Document{Version: DocumentVersion, Modules: make([]model.ModuleEntry, 0, len(s.items))}
	for _, m := range s.items {
		doc.Modules = append(doc.Modules, model.ModuleEntry{
			Title:     m.Title,
			Content:   m.Content,
			Collapsed: m.Collapsed,
		})
	}
	return doc
}

// Encode renders doc as indented JSON.
func Encode(doc model.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportTo writes the encoded document to w.
func (s *Store) ExportTo(w io.Writer) error {
	b, err := Encode(s.Export())
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// WriteExportFile writes ExportFileName into dir and returns its path.
func (s *Store) WriteExportFile(dir string) (string, error) {
	b, err := Encode(s.Export())
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, ExportFileName)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return p, nil
}

// Import replaces the whole list with the modules in data. Identities restart.
// On error the list is left as it was.
func (s *Store) Import(data []byte) error {
	entries, err := Parse(data)
	if err != nil {
		return err
	}
	s.replace(entries)
	return nil
}

// ImportReader reads r fully and imports it. Read errors count as invalid input.
func (s *Store) ImportReader(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: read: %v", ErrInvalidFormat, err)
	}
	return s.Import(b)
}

// ImportFile imports the file at path.
func (s *Store) ImportFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read file: %v", ErrInvalidFormat, err)
	}
	return s.Import(b)
}

// Parse decodes either a bare array of module objects or an object carrying
// a "modules" array. Fields are read loosely: a missing title or content is
// blank, and collapsed follows JSON truthiness.
func Parse(data []byte) ([]model.ModuleEntry, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	var list []any
	switch v := raw.(type) {
	case []any:
		list = v
	case map[string]any:
		ms, ok := v["modules"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: no modules array", ErrInvalidFormat)
		}
		list = ms
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrInvalidFormat)
	}

	out := make([]model.ModuleEntry, 0, len(list))
	for i, item := range list {
		e, err := parseEntry(item)
		if err != nil {
			return nil, fmt.Errorf("%w: module %d: %v", ErrInvalidFormat, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseEntry(item any) (model.ModuleEntry, error) {
	switch v := item.(type) {
	case nil:
		return model.ModuleEntry{}, errors.New("null entry")
	case map[string]any:
		title, err := looseString(v["title"])
		if err != nil {
			return model.ModuleEntry{}, fmt.Errorf("title: %w", err)
		}
		content, err := looseString(v["content"])
		if err != nil {
			return model.ModuleEntry{}, fmt.Errorf("content: %w", err)
		}
		return model.ModuleEntry{
			Title:     strings.TrimSpace(title),
			Content:   content,
			Collapsed: truthy(v["collapsed"]),
		}, nil
	default:
		// Scalars have no fields; they import as blank modules.
		return model.ModuleEntry{}, nil
	}
}

// looseString accepts strings and falsy values; other types are rejected.
func looseString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	if !truthy(v) {
		return "", nil
	}
	return "", fmt.Errorf("unexpected %T", v)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
