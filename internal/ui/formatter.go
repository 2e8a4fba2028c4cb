package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/discovery"
	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{config: cfg, out: out}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// PrintAffected prints the selection summary:
//
//	Changed test files... 2. ['test_a.py', 'test_b.py']
//	Changed test folders... 1. ['tests/']
func (f *Formatter) PrintAffected(affected domain.Affected) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, affectedLine("files", affected.Files))
	fmt.Fprintln(f.out, affectedLine("folders", affected.Folders))
	if len(affected.Tests) > 0 {
		fmt.Fprintf(f.out, "Changed tests... %d. %s\n", len(affected.Tests), pyList(affected.Tests))
	}
}

func affectedLine(kind string, items []string) string {
	return fmt.Sprintf("Changed test %s... %d. %s", kind, len(items), pyList(items))
}

// pyList renders items the way python prints a list of strings
func pyList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// PrintCommand prints the runner invocation of a dry run
func (f *Formatter) PrintCommand(argv []string) {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t'\"[]*?$") {
			arg = strconv.Quote(arg)
		}
		quoted[i] = arg
	}
	cyan.Fprintf(f.out, "Would run: %s\n", strings.Join(quoted, " "))
}

// treeNode is one line of the test list tree
type treeNode struct {
	label    string
	color    *color.Color
	children []treeNode
}

// PrintTestList prints the affected selection as a tree. With showTestCases
// every test file lists the test cases it contains; with expandFolders every
// folder lists the test files found under it. A folder that cannot be
// scanned fails the listing before anything is printed.
func (f *Formatter) PrintTestList(affected domain.Affected, showTestCases, expandFolders bool) error {
	filter := discovery.NewFilter(f.config.Conventions)
	parser := discovery.NewParser(filter)
	scanner := discovery.NewScanner(filter, f.config.ProjectPath, f.config.PathsToIgnore)

	var nodes []treeNode
	for _, file := range affected.Files {
		nodes = append(nodes, f.fileNode(parser, file, showTestCases))
	}
	for _, folder := range affected.Folders {
		node := treeNode{label: folder, color: cyan}
		if expandFolders {
			children, err := f.folderChildren(scanner, parser, folder, showTestCases)
			if err != nil {
				return fmt.Errorf("expand folder %s: %w", folder, err)
			}
			node.children = children
		}
		nodes = append(nodes, node)
	}
	for _, id := range affected.Tests {
		nodes = append(nodes, treeNode{label: id, color: yellow})
	}

	total := len(affected.Files) + len(affected.Folders) + len(affected.Tests)
	green.Fprintf(f.out, "Found %d affected test path(s):\n\n", total)
	f.printTree(nodes, "")
	return nil
}

func (f *Formatter) fileNode(parser *discovery.Parser, file string, showTestCases bool) treeNode {
	node := treeNode{label: file, color: cyan}
	if !showTestCases {
		return node
	}

	testCases, err := parser.FindTestCases(f.projectPath(file))
	if err != nil {
		node.children = []treeNode{{label: fmt.Sprintf("(error reading test file: %v)", err), color: red}}
		return node
	}
	if len(testCases) == 0 {
		node.children = []treeNode{{label: "(no test cases found)", color: red}}
		return node
	}
	for _, tc := range testCases {
		label := tc.Name
		if tc.Class != "" {
			label = tc.Class + "::" + tc.Name
		}
		node.children = append(node.children, treeNode{label: label, color: yellow})
	}
	return node
}

func (f *Formatter) folderChildren(scanner *discovery.Scanner, parser *discovery.Parser, folder string, showTestCases bool) ([]treeNode, error) {
	files, err := scanner.Scan(folder)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []treeNode{{label: "(no test files found)", color: red}}, nil
	}

	var children []treeNode
	for _, file := range files {
		children = append(children, f.fileNode(parser, file, showTestCases))
	}
	return children, nil
}

// projectPath resolves a git relative path against the project path
func (f *Formatter) projectPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.config.ProjectPath, filepath.FromSlash(p))
}

func (f *Formatter) printTree(nodes []treeNode, prefix string) {
	for i, node := range nodes {
		connector, childPrefix := "├── ", "│   "
		if i == len(nodes)-1 {
			connector, childPrefix = "└── ", "    "
		}
		fmt.Fprint(f.out, prefix+connector)
		node.color.Fprintln(f.out, node.label)
		f.printTree(node.children, prefix+childPrefix)
	}
}

// PrintRunStats displays the statistics of a picked run
func (f *Formatter) PrintRunStats(report domain.RunReport) {
	meta := report.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                     Picked Run Statistics                     ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		name  string
		value string
		color *color.Color
	}{
		{"Mode", meta.Mode, white},
		{"Picked", meta.Picked, white},
		{"Parent Branch", meta.ParentBranch, white},
		{"Changed Test Files", strconv.Itoa(len(report.Affected.Files)), white},
		{"Changed Test Folders", strconv.Itoa(len(report.Affected.Folders)), white},
		{"Changed Tests", strconv.Itoa(len(report.Affected.Tests)), white},
		{"Passed", strconv.Itoa(meta.Passed), green},
		{"Failed", strconv.Itoa(meta.Failed), red},
		{"Errors", strconv.Itoa(meta.Errors), red},
		{"Skipped", strconv.Itoa(meta.Skipped), yellow},
		{"Exit Code", strconv.Itoa(meta.ExitCode), white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	printed := 0
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		if printed > 0 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
		fmt.Fprintf(f.out, "│ %-31s │ ", row.name)
		row.color.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		printed++
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	switch {
	case meta.ExitCode == 0:
		green.Fprintln(f.out, "✓ All picked tests passed!")
	case meta.Failed+meta.Errors > 0:
		red.Fprintf(f.out, "✗ %d test(s) failed, %d error(s)\n", meta.Failed, meta.Errors)
	default:
		red.Fprintf(f.out, "✗ pytest exited with code %d\n", meta.ExitCode)
	}
}
