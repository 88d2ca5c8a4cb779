// Package docs turns plain-text documentation trees into titled paragraphs.
//
// A Parser matches files under a base directory with a glob, splits each file
// at every match of a multi-line header expression, and returns one Document
// per readable file in traversal order.
package docs

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"unicode/utf8"

	"github.com/atomicstack/sysctl-control/internal/logging/events"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidPattern is returned when the header expression does not compile.
	ErrInvalidPattern = errors.New("invalid header pattern")
	// ErrInvalidGlob is returned when the file glob is malformed.
	ErrInvalidGlob = errors.New("invalid glob pattern")
	// ErrInvalidPath is returned when the base path is not valid UTF-8.
	ErrInvalidPath = errors.New("base path is not valid UTF-8")
)

// Parser splits the files selected by Glob at every match of Pattern.
type Parser struct {
	Glob    string
	Pattern *regexp.Regexp
	// Workers bounds the number of files read concurrently. Zero uses GOMAXPROCS.
	Workers int
}

// NewParser compiles headerPattern in multi-line mode so that ^ and $ anchor
// at line boundaries.
func NewParser(glob, headerPattern string) (*Parser, error) {
	pattern, err := regexp.Compile("(?m)" + headerPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	glob = filepath.ToSlash(glob)
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGlob, glob)
	}
	return &Parser{Glob: glob, Pattern: pattern}, nil
}

// Label names the result of parsing base with this parser. Parsers with a
// different glob or pattern produce a different label for the same base.
func (p *Parser) Label(base string) string {
	h := fnv.New64a()
	h.Write([]byte(p.Glob))
	h.Write([]byte{0})
	h.Write([]byte(p.Pattern.String()))
	return fmt.Sprintf("%s#%016x", base, h.Sum64())
}

// Parse returns one Document per readable file matched under base. Files that
// fail during traversal or cannot be read are skipped.
func (p *Parser) Parse(ctx context.Context, base string) ([]Document, error) {
	if !utf8.ValidString(base) {
		return nil, ErrInvalidPath
	}
	paths, err := p.match(base)
	if err != nil {
		return nil, err
	}
	events.Docs.Matched(base, p.Glob, len(paths))

	results := make([]*Document, len(paths))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(p.workers())
	for i, path := range paths {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				events.Docs.Skipped(path, err)
				return nil
			}
			doc := NewDocument(Extract(p.Pattern, string(data)), path)
			results[i] = &doc
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	documents := make([]Document, 0, len(results))
	for _, doc := range results {
		if doc != nil {
			documents = append(documents, *doc)
		}
	}
	return documents, nil
}

func (p *Parser) match(base string) ([]string, error) {
	var paths []string
	fsys := os.DirFS(base)
	err := doublestar.GlobWalk(fsys, p.Glob, func(path string, d fs.DirEntry) error {
		paths = append(paths, filepath.Join(base, filepath.FromSlash(path)))
		return nil
	}, doublestar.WithFilesOnly())
	if errors.Is(err, doublestar.ErrBadPattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGlob, p.Glob)
	}
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", base, err)
	}
	return paths, nil
}

func (p *Parser) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}
