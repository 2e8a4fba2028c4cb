package domain

// Affected is the selection produced by a change-detection mode.
// Every list keeps the order in which git reported the entries.
type Affected struct {
	Files   []string `json:"files"`
	Folders []string `json:"folders"`
	Tests   []string `json:"tests,omitempty"` // path::Class or path::function
}

// Targets returns the selection as runner arguments: files, then folders, then tests
func (a Affected) Targets() []string {
	targets := make([]string, 0, len(a.Files)+len(a.Folders)+len(a.Tests))
	targets = append(targets, a.Files...)
	targets = append(targets, a.Folders...)
	targets = append(targets, a.Tests...)
	return targets
}

// Empty reports whether nothing was selected
func (a Affected) Empty() bool {
	return len(a.Files) == 0 && len(a.Folders) == 0 && len(a.Tests) == 0
}
