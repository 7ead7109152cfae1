// Package load collects the definition files of one generation run and
// hands them to the parser as a single source.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/syssam/strata/compiler/parse"
	"github.com/syssam/strata/compiler/schema"
)

// Definitions is the result of loading one schema glob: the files that
// matched, in lexical order, and their joined source text.
type Definitions struct {
	Files  []string
	Source string
}

// Load reads every file matching the glob. The files are concatenated
// in lexical order so parse results are stable across runs.
func Load(glob string) (*Definitions, error) {
	files, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("load: bad schema glob %q: %w", glob, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("load: no definition files match %q", glob)
	}
	sort.Strings(files)

	var b strings.Builder
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		b.Write(src)
		b.WriteByte('\n')
	}
	return &Definitions{Files: files, Source: b.String()}, nil
}

// Parse loads the glob and parses the joined source.
func Parse(glob string) (*schema.Schema, []*schema.Diagnostic, error) {
	defs, err := Load(glob)
	if err != nil {
		return nil, nil, err
	}
	s, diags := parse.Parse(defs.Source)
	return s, diags, nil
}
