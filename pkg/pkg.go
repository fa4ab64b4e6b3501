//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of lox embedded at build time.
// It is printed by the CLI when users pass --version.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command identifier. It appears in help text and
	// names the configuration and cache directories.
	Name = "lox"
	// Description is a short, human-readable summary used in help output.
	Description = "Tree-walking interpreter for the Lox scripting language"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
