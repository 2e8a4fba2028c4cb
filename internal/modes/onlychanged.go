package modes

import (
	"context"
	"strings"

	"github.com/omkarkhatavkar/pytest-picked/internal/discovery"
	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// OnlyChangedMode selects the test classes and functions touched by the
// hunks of git diff, rather than whole files.
type OnlyChangedMode struct {
	mode
	onlyModifiedTests bool
}

// NewOnlyChanged returns the onlychanged strategy. When onlyModifiedTests
// is false the strategy selects nothing.
func NewOnlyChanged(opts Options, onlyModifiedTests bool) *OnlyChangedMode {
	return &OnlyChangedMode{mode: newMode(opts), onlyModifiedTests: onlyModifiedTests}
}

// Name returns "onlychanged"
func (o *OnlyChangedMode) Name() string {
	return OnlyChanged
}

// Command returns git diff
func (o *OnlyChangedMode) Command() []string {
	return []string{o.gitPath, "diff"}
}

type diffLineKind int

const (
	otherLine diffLineKind = iota
	fileHeader
	hunkHeader
	addedLine
	removedLine
	contextLine
)

// diffLine classifies one line of patch output. For file headers the value
// is the new path, otherwise the line itself.
func diffLine(line string) (diffLineKind, string) {
	switch {
	case strings.HasPrefix(line, "+++ "):
		if p, ok := strings.CutPrefix(line, "+++ b/"); ok {
			return fileHeader, unquotePath(strings.TrimRight(p, "\t"))
		}
		// +++ /dev/null: the file was deleted
		return fileHeader, ""
	case strings.HasPrefix(line, "@@"):
		return hunkHeader, line
	case strings.HasPrefix(line, "+"):
		return addedLine, line
	case strings.HasPrefix(line, "--- "):
		return otherLine, ""
	case strings.HasPrefix(line, "-"):
		return removedLine, line
	case strings.HasPrefix(line, " "):
		return contextLine, line
	default:
		return otherLine, ""
	}
}

// Parse returns the path of a +++ header, the line itself for hunk headers
// and added lines, and "" for everything else.
func (o *OnlyChangedMode) Parse(line string) string {
	kind, value := diffLine(line)
	if kind == removedLine || kind == contextLine {
		return ""
	}
	return value
}

// hunkContext returns the source context git prints after the second @@,
// keeping its indentation.
func hunkContext(header string) string {
	rest := header[2:]
	i := strings.Index(rest, "@@")
	if i < 0 {
		return ""
	}
	ctx := rest[i+2:]
	return strings.TrimPrefix(ctx, " ")
}

// hunkWalker tracks the file and class region while walking a patch.
type hunkWalker struct {
	filter *discovery.Filter

	header  string // last +++ path seen
	file    string // current test file, "" when the file is not tracked
	inClass bool   // inside a class body, test class or not
	// test class opened by a context line, recorded on its first change
	pending string

	seen  map[string]bool
	tests []string
}

func (w *hunkWalker) record(name string) {
	id := w.file + "::" + name
	if w.seen[id] {
		return
	}
	w.seen[id] = true
	w.tests = append(w.tests, id)
}

func (w *hunkWalker) enterFile(p string) {
	// Repeated headers for the same file keep the current region
	if p == w.header && p != "" {
		return
	}
	w.header = p
	w.inClass = false
	w.pending = ""
	w.file = ""
	if p != "" && w.filter.IsTestFile(p) {
		w.file = p
	}
}

// definition handles a class or def statement found in a hunk context or
// in an added line.
func (w *hunkWalker) definition(source string) {
	trimmed := strings.TrimLeft(source, " \t")
	indented := len(trimmed) != len(source)

	if name := discovery.ClassName(trimmed); name != "" {
		if indented {
			return
		}
		w.inClass = true
		w.pending = ""
		if w.filter.IsTestClass(name) {
			w.record(name)
		}
		return
	}

	if name := discovery.FunctionName(trimmed); name != "" {
		if !indented {
			w.inClass, w.pending = false, ""
		}
		if !w.inClass && w.filter.IsTestFunction(name) {
			w.record(name)
		}
	}
}

// context handles an unchanged line of a hunk body. Unindented class and
// def statements move the region but record nothing by themselves.
func (w *hunkWalker) context(source string) {
	trimmed := strings.TrimLeft(source, " \t")
	if trimmed == "" || trimmed != source {
		return
	}
	if name := discovery.ClassName(trimmed); name != "" {
		w.inClass = true
		w.pending = ""
		if w.filter.IsTestClass(name) {
			w.pending = name
		}
		return
	}
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "@") || strings.HasPrefix(trimmed, ")") {
		return
	}
	// def or any other top-level statement ends the class body
	w.inClass, w.pending = false, ""
}

// change records the class opened by a context line when a line inside
// its body is added or removed.
func (w *hunkWalker) change(source string) {
	if w.pending == "" || !w.inClass {
		return
	}
	trimmed := strings.TrimLeft(source, " \t")
	if trimmed == "" || trimmed == source {
		return
	}
	w.record(w.pending)
	w.pending = ""
}

func (w *hunkWalker) hunk(header string) {
	w.pending = ""
	ctx := hunkContext(header)
	trimmed := strings.TrimLeft(ctx, " \t")
	if trimmed != ctx {
		// Indented context: still inside whatever region we were in
		return
	}
	if discovery.ClassName(trimmed) == "" {
		w.inClass = false
	}
	w.definition(ctx)
}

// Collect walks git diff output and returns the affected identifiers in
// Tests, one per class or top-level function.
func (o *OnlyChangedMode) Collect(output string) domain.Affected {
	if !o.onlyModifiedTests {
		return domain.Affected{}
	}

	w := &hunkWalker{filter: o.filter, seen: make(map[string]bool)}
	for _, line := range splitLines(output) {
		kind, value := diffLine(line)
		switch kind {
		case fileHeader:
			w.enterFile(value)
		case hunkHeader:
			if w.file != "" {
				w.hunk(value)
			}
		case addedLine:
			if w.file != "" {
				w.change(value[1:])
				w.definition(value[1:])
			}
		case removedLine:
			if w.file != "" {
				w.change(value[1:])
			}
		case contextLine:
			if w.file != "" {
				w.context(value[1:])
			}
		}
	}

	return domain.Affected{Tests: w.tests}
}

// AffectedTests runs git diff and collects its output
func (o *OnlyChangedMode) AffectedTests(ctx context.Context) domain.Affected {
	if !o.onlyModifiedTests {
		return domain.Affected{}
	}
	return o.Collect(o.gitOutput(ctx, o.Command()))
}
