package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats understood by Encode and TruncateToTokens.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatCompact = "compact"
	FormatYAML    = "yaml"
)

// Encode writes nodes to w in format. An empty format means JSON.
func Encode(w io.Writer, nodes []Node, format string) error {
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nodes); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		_, err := io.WriteString(w, Text(nodes))
		return err
	case FormatCompact:
		_, err := io.WriteString(w, Compact(nodes))
		return err
	}
	return fmt.Errorf("unknown snapshot format %q", format)
}

func Text(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		for i := 0; i < n.Depth; i++ {
			b.WriteString("  ")
		}
		b.WriteString(n.Ref)
		b.WriteByte(' ')
		b.WriteString(n.Role)
		writeNameValue(&b, n)
		if n.Checked {
			b.WriteString(" [checked]")
		}
		if n.Required {
			b.WriteString(" [required]")
		}
		if n.Focused {
			b.WriteString(" [focused]")
		}
		if n.Disabled {
			b.WriteString(" [disabled]")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func Compact(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.Ref)
		b.WriteByte(':')
		b.WriteString(n.Role)
		writeNameValue(&b, n)
		if n.Checked {
			b.WriteString(" x")
		}
		if n.Focused {
			b.WriteString(" *")
		}
		if n.Disabled {
			b.WriteString(" -")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeNameValue(b *strings.Builder, n Node) {
	if n.Name != "" {
		b.WriteString(` "`)
		b.WriteString(n.Name)
		b.WriteByte('"')
	}
	if n.Value != "" {
		b.WriteString(` val="`)
		b.WriteString(n.Value)
		b.WriteByte('"')
	}
}

// TruncateToTokens keeps the longest prefix of nodes whose estimated size
// in format fits maxTokens.
func TruncateToTokens(nodes []Node, maxTokens int, format string) ([]Node, bool) {
	tokensUsed := 0
	for i, n := range nodes {
		var nodeTokens int
		switch format {
		case FormatCompact:
			size := len(n.Ref) + 1 + len(n.Role) + len(n.Name) + len(n.Value) + 8
			nodeTokens = size / 4
		case FormatText:
			size := n.Depth*2 + len(n.Ref) + 1 + len(n.Role) + len(n.Name) + len(n.Value) + 8
			nodeTokens = size / 4
		default:
			size := len(n.Ref) + len(n.Role) + len(n.Name) + len(n.Value) + 60
			nodeTokens = size / 3
		}
		if nodeTokens < 1 {
			nodeTokens = 1
		}
		tokensUsed += nodeTokens
		if tokensUsed > maxTokens {
			return nodes[:i], true
		}
	}
	return nodes, false
}
