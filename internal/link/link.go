// Package link emits the directives the enclosing build system applies to
// link the built V8 artifact.
package link

import (
	"fmt"
	"io"

	"github.com/v8build/v8build/internal/platform"
)

// Library is the gn target and the static library the build produces.
const Library = "v8_monolith"

// Kind distinguishes how a library is linked.
type Kind int

const (
	Static Kind = iota
	Dylib
)

func (k Kind) String() string {
	if k == Static {
		return "static"
	}
	return "dylib"
}

// Directive names one library the consumer must link.
type Directive struct {
	Kind Kind
	Name string
}

func (d Directive) String() string {
	return fmt.Sprintf("link-lib=%s=%s", d.Kind, d.Name)
}

// Directives returns the link set for p. The built artifact is always
// linked statically; Windows builds of V8 additionally pull in two system
// DLLs.
func Directives(p platform.Platform) []Directive {
	ds := []Directive{{Static, Library}}
	if p == platform.Win {
		ds = append(ds, Directive{Dylib, "winmm"}, Directive{Dylib, "dbghelp"})
	}
	return ds
}

// Emit writes the directives for p to w, one per line.
func Emit(w io.Writer, p platform.Platform) error {
	for _, d := range Directives(p) {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	return nil
}
