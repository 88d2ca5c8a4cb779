package sysctl

import "strings"

// Section groups parameters by the first component of their name.
type Section int

const (
	SectionAbi Section = iota
	SectionFs
	SectionKernel
	SectionNet
	SectionSunrpc
	SectionUser
	SectionVm
	SectionUnknown
)

var sectionNames = [...]string{
	SectionAbi:     "abi",
	SectionFs:      "fs",
	SectionKernel:  "kernel",
	SectionNet:     "net",
	SectionSunrpc:  "sunrpc",
	SectionUser:    "user",
	SectionVm:      "vm",
	SectionUnknown: "unknown",
}

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return sectionNames[SectionUnknown]
	}
	return sectionNames[s]
}

// Sections lists every section in display order.
func Sections() []Section {
	return []Section{
		SectionAbi,
		SectionFs,
		SectionKernel,
		SectionNet,
		SectionSunrpc,
		SectionUser,
		SectionVm,
		SectionUnknown,
	}
}

// ParseSection maps a section name (case-insensitive) to its value.
func ParseSection(name string) (Section, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range sectionNames {
		if candidate == name {
			return Section(i), true
		}
	}
	return SectionUnknown, false
}

// SectionOf derives the section of a dotted parameter name.
func SectionOf(name string) Section {
	prefix, _, _ := strings.Cut(name, ".")
	section, ok := ParseSection(prefix)
	if !ok {
		return SectionUnknown
	}
	return section
}
