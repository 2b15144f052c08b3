// Package manifest defines the build manifest: an ordered list of tool
// invocations applied to documents by the build orchestrator.
package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is the plan of a build. Step order is execution order.
type Manifest struct {
	Steps []Step `json:"steps"`
}

// Step names one tool and the keyword arguments forwarded to it verbatim.
//
// A step whose fields have the wrong JSON shape still decodes, so one bad
// step cannot stop the others: a non-string tool keeps its raw JSON text
// as the name, and args that are not an object leave Args nil and set
// ArgsErr.
type Step struct {
	Tool    string         `json:"tool"`
	Args    map[string]any `json:"args"`
	ArgsErr error          `json:"-"`

	rawArgs json.RawMessage
}

type wireStep struct {
	Tool json.RawMessage `json:"tool"`
	Args json.RawMessage `json:"args"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Step) UnmarshalJSON(data []byte) error {
	var w wireStep
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Step{Tool: toolName(w.Tool)}

	raw := bytes.TrimSpace(w.Args)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		s.Args = map[string]any{}
		return nil
	}
	if raw[0] != '{' {
		s.rawArgs = append(json.RawMessage(nil), raw...)
		s.ArgsErr = fmt.Errorf("arguments must be a JSON object, got %s", jsonKind(raw[0]))
		return nil
	}
	return json.Unmarshal(raw, &s.Args)
}

func toolName(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

func jsonKind(first byte) string {
	switch first {
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	}
	return "number"
}

// Load reads and parses the manifest at path. A missing file yields an
// error matching fs.ErrNotExist.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- manifest path is operator input
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return FromJSON(data)
}

// FromJSON parses a manifest. A missing steps key is an empty plan and a
// step without args gets an empty map. Only malformed JSON, or a plan
// whose steps are not objects, is an error.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Steps == nil {
		m.Steps = []Step{}
	}
	for i := range m.Steps {
		if m.Steps[i].Args == nil && m.Steps[i].ArgsErr == nil {
			m.Steps[i].Args = map[string]any{}
		}
	}
	return &m, nil
}

// ToJSON serializes the manifest to indented JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// Hash returns a digest of the manifest's steps. Formatting differences in
// the source file do not change it; map keys are serialized sorted.
func (m *Manifest) Hash() (string, error) {
	type hashStep struct {
		Tool    string          `json:"tool"`
		Args    map[string]any  `json:"args"`
		RawArgs json.RawMessage `json:"raw_args,omitempty"`
	}
	steps := make([]hashStep, len(m.Steps))
	for i, s := range m.Steps {
		steps[i] = hashStep{Tool: s.Tool, Args: s.Args, RawArgs: s.rawArgs}
	}
	data, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("hash manifest: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Tools lists the tool names in step order.
func (m *Manifest) Tools() []string {
	names := make([]string, len(m.Steps))
	for i, s := range m.Steps {
		names[i] = s.Tool
	}
	return names
}
