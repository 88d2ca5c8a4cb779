// Package testutil provides fixtures shared by package tests: fake procfs
// trees, documentation trees and the sample parameter set.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/sysctl-control/internal/sysctl"
)

// SampleDocs is a small admin-guide page documenting two vm parameters.
const SampleDocs = `Documentation for /proc/sys/vm/
===============================

stat_interval
=============

The time interval between which vm statistics are updated.
The default is 1 second.

swappiness
==========

This control is used to define the rough relative IO cost of swapping
and filesystem paging.
`

// WriteProcTree creates a directory laid out like /proc/sys. Keys are dotted
// parameter names; a trailing newline is added to every value.
func WriteProcTree(t testing.TB, values map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, value := range values {
		path := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(name, ".", "/")))
		writeFile(t, path, value+"\n")
	}
	return root
}

// WriteDocsTree creates files relative to a fresh directory.
func WriteDocsTree(t testing.TB, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	for rel, contents := range files {
		writeFile(t, filepath.Join(base, filepath.FromSlash(rel)), contents)
	}
	return base
}

// SampleParameters returns three parameters in three sections. The kernel
// and vm entries carry documentation.
func SampleParameters() []*sysctl.Parameter {
	return []*sysctl.Parameter{
		{
			Name:    "user.name",
			Value:   "system",
			Section: sysctl.SectionUser,
		},
		{
			Name:        "kernel.fictional.test_param",
			Value:       "0",
			Section:     sysctl.SectionKernel,
			Description: "Fictional parameter used by tests.",
			DocsTitle:   "test_param",
			DocsPath:    "/doc/kernel.rst",
		},
		{
			Name:        "vm.stat_interval",
			Value:       "1",
			Section:     sysctl.SectionVm,
			Description: "The time interval between which vm statistics are updated.",
			DocsTitle:   "stat_interval",
			DocsPath:    "/doc/vm.rst",
		},
	}
}

func writeFile(t testing.TB, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
