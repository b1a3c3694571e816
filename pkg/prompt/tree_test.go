package prompt

import "testing"

func TestRenderTree(t *testing.T) {
	paths := []string{
		"pkg/util.py",
		"main.py",
		"pkg/sub/deep.py",
		"README.md",
	}

	want := "pkg/\n" +
		"    sub/\n" +
		"        deep.py\n" +
		"    util.py\n" +
		"README.md\n" +
		"main.py"

	got := RenderTree(paths)
	if got != want {
		t.Errorf("RenderTree() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTreeEmpty(t *testing.T) {
	if got := RenderTree(nil); got != "" {
		t.Errorf("expected empty tree, got %q", got)
	}
}
