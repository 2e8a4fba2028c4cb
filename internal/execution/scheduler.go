package execution

import (
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

// Scheduler orders collected node ids for a run
type Scheduler interface {
	Schedule(items []string) []string
}

// PriorityScheduler moves the items touched by a change to the front
type PriorityScheduler struct {
	affected domain.Affected
}

// NewPriorityScheduler creates a scheduler prioritising affected items
func NewPriorityScheduler(affected domain.Affected) *PriorityScheduler {
	return &PriorityScheduler{affected: affected}
}

// Matches reports whether a node id belongs to the affected selection.
// The file part of the id is matched against affected files as a glob and
// against affected folders as a prefix; the whole id is matched against
// affected test ids and their children.
func (s *PriorityScheduler) Matches(item string) bool {
	file, _, _ := strings.Cut(item, "::")

	for _, pattern := range s.affected.Files {
		if file == pattern {
			return true
		}
		if ok, err := doublestar.Match(pattern, file); err == nil && ok {
			return true
		}
	}
	for _, folder := range s.affected.Folders {
		if strings.HasPrefix(file, folder) {
			return true
		}
	}
	for _, id := range s.affected.Tests {
		if item == id || strings.HasPrefix(item, id+"::") || strings.HasPrefix(item, id+"[") {
			return true
		}
	}
	return false
}

// Schedule returns the matching items followed by the rest, each group in
// its original order. The input is left untouched.
func (s *PriorityScheduler) Schedule(items []string) []string {
	first := make([]string, 0, len(items))
	var later []string
	for _, item := range items {
		if s.Matches(item) {
			first = append(first, item)
		} else {
			later = append(later, item)
		}
	}
	return append(first, later...)
}
