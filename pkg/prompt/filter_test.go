package prompt

import (
	"reflect"
	"testing"
)

func TestFilterPaths(t *testing.T) {
	paths := []string{"main.py", "pkg/util.py", "pkg/util_test.py", "README.md", "docs/Guide.MD"}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name: "no patterns keeps everything",
			want: paths,
		},
		{
			name:    "include python only",
			include: []string{"**/*.py", "*.py"},
			want:    []string{"main.py", "pkg/util.py", "pkg/util_test.py"},
		},
		{
			name:    "bare pattern reaches nested files",
			include: []string{"*.py"},
			want:    []string{"main.py", "pkg/util.py", "pkg/util_test.py"},
		},
		{
			name:    "bare exclude reaches nested files",
			exclude: []string{"*_test.py"},
			want:    []string{"main.py", "pkg/util.py", "README.md", "docs/Guide.MD"},
		},
		{
			name:    "pattern with separator stays anchored",
			include: []string{"pkg/*.py"},
			want:    []string{"pkg/util.py", "pkg/util_test.py"},
		},
		{
			name:    "exclude tests",
			exclude: []string{"**/*_test.py"},
			want:    []string{"main.py", "pkg/util.py", "README.md", "docs/Guide.MD"},
		},
		{
			name:    "exclude wins over include",
			include: []string{"pkg/*"},
			exclude: []string{"**/*_test.py"},
			want:    []string{"pkg/util.py"},
		},
		{
			name:    "matching is case-insensitive",
			include: []string{"**/*.md", "*.md"},
			want:    []string{"README.md", "docs/Guide.MD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPaths(paths, tt.include, tt.exclude)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}
