package cmdtree_test

import (
	"testing"

	"github.com/psaab/hierconfig/pkg/cmdtree"
)

func TestCompleteFromTreeTopLevel(t *testing.T) {
	got := cmdtree.CompleteFromTree(cmdtree.OperationalTree, nil, "sh", nil)
	if len(got) != 1 || got[0] != "show" {
		t.Fatalf("got %v, want [show]", got)
	}
}

func TestCompleteFromTreeNested(t *testing.T) {
	got := cmdtree.CompleteFromTree(cmdtree.OperationalTree, []string{"show"}, "conf", nil)
	if len(got) != 1 || got[0] != "configuration" {
		t.Fatalf("got %v, want [configuration]", got)
	}
}

func TestCompleteFromTreeUnknownWord(t *testing.T) {
	got := cmdtree.CompleteFromTree(cmdtree.OperationalTree, []string{"nonexistent"}, "", nil)
	if got != nil {
		t.Fatalf("expected nil for unknown word, got %v", got)
	}
}

func TestLookupDescOperational(t *testing.T) {
	desc := cmdtree.LookupDesc([]string{"show"}, "configuration", false)
	if desc == "" {
		t.Fatalf("expected non-empty description for show configuration")
	}
}

func TestLookupDescConfigMode(t *testing.T) {
	desc := cmdtree.LookupDesc(nil, "commit", true)
	if desc == "" {
		t.Fatalf("expected non-empty description for commit")
	}
}

func TestCommonPrefix(t *testing.T) {
	got := cmdtree.CommonPrefix([]string{"interface", "interfaces", "internal"})
	if got != "inter" {
		t.Fatalf("got %q, want %q", got, "inter")
	}
}

func TestFilterPrefix(t *testing.T) {
	got := cmdtree.FilterPrefix([]string{"show", "set", "commit"}, "s")
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 items starting with s", got)
	}
}
