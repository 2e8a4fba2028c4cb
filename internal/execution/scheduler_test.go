package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omkarkhatavkar/pytest-picked/internal/domain"
)

func TestPriorityScheduler_Matches(t *testing.T) {
	s := NewPriorityScheduler(domain.Affected{
		Files:   []string{"tests/test_api.py", "tests/unit/*_test.py"},
		Folders: []string{"integration/"},
		Tests:   []string{"tests/test_models.py::TestUser", "tests/test_views.py::test_index"},
	})

	tests := []struct {
		item     string
		expected bool
	}{
		{"tests/test_api.py::test_get", true},
		{"tests/test_api.py::TestA::test_b", true},
		{"tests/unit/db_test.py::test_connect", true},
		{"integration/test_flow.py::test_login", true},
		{"integration/deep/test_more.py::test_x", true},
		{"tests/test_models.py::TestUser::test_name", true},
		{"tests/test_models.py::TestUser", true},
		{"tests/test_models.py::TestUserAdmin::test_name", false},
		{"tests/test_views.py::test_index[param]", true},
		{"tests/test_views.py::test_index_page", false},
		{"tests/test_other.py::test_get", false},
		{"other_integration/test_flow.py::test_login", false},
	}

	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			if got := s.Matches(tt.item); got != tt.expected {
				t.Errorf("Matches(%q): expected %v, got %v", tt.item, tt.expected, got)
			}
		})
	}
}

func TestPriorityScheduler_ScheduleIsStable(t *testing.T) {
	s := NewPriorityScheduler(domain.Affected{Files: []string{"tests/test_b.py"}, Folders: []string{"api/"}})
	items := []string{
		"tests/test_a.py::test_1",
		"tests/test_b.py::test_1",
		"api/test_c.py::test_1",
		"tests/test_a.py::test_2",
		"tests/test_b.py::test_2",
	}
	original := append([]string(nil), items...)

	got := s.Schedule(items)

	assert.Equal(t, []string{
		"tests/test_b.py::test_1",
		"api/test_c.py::test_1",
		"tests/test_b.py::test_2",
		"tests/test_a.py::test_1",
		"tests/test_a.py::test_2",
	}, got)
	assert.Equal(t, original, items)
}

func TestPriorityScheduler_NothingAffected(t *testing.T) {
	items := []string{"tests/test_a.py::test_1", "tests/test_b.py::test_1"}

	assert.Equal(t, items, NewPriorityScheduler(domain.Affected{}).Schedule(items))
	assert.Empty(t, NewPriorityScheduler(domain.Affected{}).Schedule(nil))
}
