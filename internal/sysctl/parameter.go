package sysctl

import (
	"fmt"
	"strings"
)

// Parameter is one kernel runtime setting. Parameters are owned by the
// controller and shared by pointer, so an update is visible to every holder.
type Parameter struct {
	Name        string
	Value       string
	Description string
	Section     Section
	DocsPath    string
	DocsTitle   string
}

// AbsoluteName returns the last component of the dotted name.
func (p *Parameter) AbsoluteName() string {
	if idx := strings.LastIndex(p.Name, "."); idx >= 0 {
		return p.Name[idx+1:]
	}
	return p.Name
}

// Documentation renders the text shown next to the parameter list.
func (p *Parameter) Documentation() string {
	title := p.DocsTitle
	if title == "" {
		title = p.AbsoluteName()
	}
	description := strings.TrimSpace(p.Description)
	if description == "" {
		description = "No documentation available"
	}
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", len([]rune(title))))
	b.WriteByte('\n')
	b.WriteString(description)
	b.WriteString("\n-\n")
	fmt.Fprintf(&b, "Parameter: %s", p.Name)
	if p.DocsPath != "" {
		fmt.Fprintf(&b, "\nReference: %s", p.DocsPath)
	}
	return b.String()
}

func (p *Parameter) String() string {
	return fmt.Sprintf("%s = %s", p.Name, p.Value)
}
