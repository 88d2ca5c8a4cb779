// Package sysctl reads and writes kernel parameters exposed under a procfs
// root such as /proc/sys.
package sysctl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atomicstack/sysctl-control/internal/docs"
	"github.com/atomicstack/sysctl-control/internal/logging/events"
)

// DefaultRoot is where Linux exposes runtime kernel parameters.
const DefaultRoot = "/proc/sys"

// ErrNoSuchParameter is returned when a name does not resolve to a parameter.
var ErrNoSuchParameter = errors.New("no such sysctl")

// Sysctl owns the parameter list for one procfs root.
type Sysctl struct {
	root       string
	parameters []*Parameter
	byName     map[string]*Parameter
	documents  []docs.Document
}

// New wraps an existing parameter list. Sections are derived from names when
// they are left at their zero value and the name says otherwise.
func New(root string, parameters []*Parameter) *Sysctl {
	s := &Sysctl{root: root}
	s.setParameters(parameters)
	return s
}

// Load reads every readable parameter under root.
func Load(root string) (*Sysctl, error) {
	parameters, err := readTree(root)
	if err != nil {
		return nil, err
	}
	events.App.Parameters(root, len(parameters))
	return New(root, parameters), nil
}

// Parameters returns the parameter handles in name order of discovery.
func (s *Sysctl) Parameters() []*Parameter {
	out := make([]*Parameter, len(s.parameters))
	copy(out, s.parameters)
	return out
}

// Get looks up a parameter by its dotted name.
func (s *Sysctl) Get(name string) (*Parameter, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Update writes value to the named parameter. Setting the current value is a
// successful no-op.
func (s *Sysctl) Update(name, value string) error {
	p, ok := s.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchParameter, name)
	}
	if p.Value == value {
		return nil
	}
	path := s.pathOf(name)
	events.Sysctl.Write(name, value)
	if err := writeValue(path, value); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoSuchParameter, name)
		}
		return fmt.Errorf("cannot set %s: %w", name, err)
	}
	if current, err := readValue(path); err == nil {
		p.Value = current
	} else {
		p.Value = value
	}
	return nil
}

// Reload re-reads the tree. Parameters that still exist keep their handle
// so holders see fresh values; vanished ones are dropped and new ones added.
func (s *Sysctl) Reload() error {
	fresh, err := readTree(s.root)
	if err != nil {
		return err
	}
	merged := make([]*Parameter, 0, len(fresh))
	for _, candidate := range fresh {
		if existing, ok := s.byName[candidate.Name]; ok {
			existing.Value = candidate.Value
			merged = append(merged, existing)
			continue
		}
		merged = append(merged, candidate)
	}
	s.setParameters(merged)
	if s.documents != nil {
		s.ApplyDocs(s.documents)
	}
	return nil
}

// ApplyDocs fills the documentation fields of every parameter that has a
// matching paragraph. It returns the number of documented parameters.
func (s *Sysctl) ApplyDocs(documents []docs.Document) int {
	s.documents = documents
	index := docs.NewIndex(documents)
	documented := 0
	for _, p := range s.parameters {
		entry, ok := index.Lookup(p.Section.String(), lookupNames(p)...)
		if !ok {
			continue
		}
		p.DocsTitle = entry.Paragraph.Heading()
		p.DocsPath = entry.Path
		p.Description = strings.TrimSpace(entry.Paragraph.Contents)
		documented++
	}
	events.Docs.Applied(len(s.parameters), documented)
	return documented
}

func (s *Sysctl) setParameters(parameters []*Parameter) {
	s.parameters = parameters
	s.byName = make(map[string]*Parameter, len(parameters))
	for _, p := range parameters {
		if p.Section == SectionAbi && SectionOf(p.Name) != SectionAbi {
			p.Section = SectionOf(p.Name)
		}
		s.byName[p.Name] = p
	}
}

func (s *Sysctl) pathOf(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.ReplaceAll(name, ".", "/")))
}

func lookupNames(p *Parameter) []string {
	names := []string{p.AbsoluteName()}
	if _, rest, ok := strings.Cut(p.Name, "."); ok && rest != names[0] {
		names = append(names, rest, strings.ReplaceAll(rest, ".", "/"))
	}
	return names
}

func readTree(root string) ([]*Parameter, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("read %s: not a directory", root)
	}
	var parameters []*Parameter
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		name := strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
		value, err := readValue(path)
		if err != nil {
			events.Sysctl.Skipped(name, err)
			return nil
		}
		parameters = append(parameters, &Parameter{
			Name:    name,
			Value:   value,
			Section: SectionOf(name),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.SliceStable(parameters, func(i, j int) bool {
		return parameters[i].Name < parameters[j].Name
	})
	return parameters, nil
}

func readValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(string(data)), " "), nil
}

func writeValue(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(value + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
