package sysctl

import (
	"os"
)

const (
	// DefaultDocsGlob selects the reStructuredText files of the kernel
	// admin guide.
	DefaultDocsGlob = "*.rst"
	// DefaultDocsPattern matches a lowercase parameter heading followed by
	// an RST underline.
	DefaultDocsPattern = `^([a-z0-9_][a-z0-9_/, .-]*)\n[=\-~]{3,}$`
)

// DocsCandidates lists the directories searched for kernel documentation
// when none is configured.
var DocsCandidates = []string{
	"/usr/share/doc/linux/admin-guide/sysctl",
	"/usr/share/doc/linux-doc/admin-guide/sysctl",
	"/usr/share/doc/kernel-doc/Documentation/admin-guide/sysctl",
	"/usr/src/linux/Documentation/admin-guide/sysctl",
}

// FindDocs returns the first candidate directory that exists.
func FindDocs(candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
