/*
Copyright © 2026 amictl contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result is the structured outcome a command prints on success.
type Result struct {
	Changed     bool     `json:"changed" yaml:"changed"`
	ImageID     string   `json:"image_id,omitempty" yaml:"image_id,omitempty"`
	State       string   `json:"state,omitempty" yaml:"state,omitempty"`
	SnapshotIDs []string `json:"snapshot_ids,omitempty" yaml:"snapshot_ids,omitempty"`
	Msg         string   `json:"msg,omitempty" yaml:"msg,omitempty"`
}

// Render formats the result in the requested output format: "json",
// "yaml", or "text" (the default).
func (r Result) Render(format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render result as JSON: %w", err)
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("failed to render result as YAML: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "changed=%t", r.Changed)
		if r.ImageID != "" {
			fmt.Fprintf(&b, " image_id=%s", r.ImageID)
		}
		if r.State != "" {
			fmt.Fprintf(&b, " state=%s", r.State)
		}
		if len(r.SnapshotIDs) > 0 {
			fmt.Fprintf(&b, " snapshot_ids=%s", strings.Join(r.SnapshotIDs, ","))
		}
		if r.Msg != "" {
			fmt.Fprintf(&b, " msg=%q", r.Msg)
		}
		return b.String(), nil
	}
}

// RenderList formats a slice of items (e.g. image summaries) in the
// requested output format. Text output is one line per item.
func RenderList(items interface{}, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render list as JSON: %w", err)
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(items)
		if err != nil {
			return "", fmt.Errorf("failed to render list as YAML: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		data, err := yaml.Marshal(items)
		if err != nil {
			return "", fmt.Errorf("failed to render list: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
}

// ValidOutputFormat reports whether format names a supported output format.
func ValidOutputFormat(format string) bool {
	switch format {
	case "", "text", "json", "yaml":
		return true
	default:
		return false
	}
}
