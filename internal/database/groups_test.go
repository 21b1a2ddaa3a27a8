package database

import (
	"testing"
)

func TestMakeGroupSlug(t *testing.T) {
	for _, tc := range []struct {
		name string
		slug string
	}{
		{"Algebra Basics", "algebra-basics"},
		{"Class 10 (Evening)", "class-10-evening"},
		{"  Padded  Name  ", "padded-name"},
		{"Физика", "fizika"},
		{"C++ Crash Course!", "c-crash-course"},
		{"2024 Batch", "2024-batch"},
	} {
		if got := MakeGroupSlug(tc.name); got != tc.slug {
			t.Errorf("MakeGroupSlug(%q) = %q, want %q", tc.name, got, tc.slug)
		}
	}
}
