package util_test

import (
	"testing"

	"vgc-go/packages/compiler/src/util"
)

func TestVarName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"brush", "brush"},
		{"my selection", "my_selection"},
		{"sel-1!", "sel_1_"},
		{"already_fine_2", "already_fine_2"},
	}
	for _, c := range cases {
		if got := util.VarName(c.in); got != c.want {
			t.Errorf("VarName(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestDedup(t *testing.T) {
	got := util.Dedup([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func TestSetEqual(t *testing.T) {
	if !util.SetEqual([]string{"a", "b"}, []string{"b", "a", "a"}) {
		t.Error("Expected sets to be equal")
	}
	if util.SetEqual([]string{"a"}, []string{"a", "b"}) {
		t.Error("Expected sets to differ")
	}
}
