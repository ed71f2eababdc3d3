package forkchoice

import (
	"reflect"
	"testing"
)

func TestChildIndex_ChildrenSortedDeterministically(t *testing.T) {
	parent := BlockRoot{0x01}
	a := BlockRoot{0x03}
	b := BlockRoot{0x01}
	c := BlockRoot{0x02}

	idx := NewChildIndex()
	idx.AddBlock(&Block{ParentRoot: parent}, a)
	idx.AddBlock(&Block{ParentRoot: parent}, b)
	idx.AddBlock(&Block{ParentRoot: parent}, c)

	want := []BlockRoot{b, c, a}
	got := idx.Children(parent)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Children() = %v, want %v", got, want)
	}
}

func TestChildIndex_DuplicateAddIsNoOp(t *testing.T) {
	parent := BlockRoot{0x01}
	child := BlockRoot{0x02}

	idx := NewChildIndex()
	idx.AddBlock(&Block{ParentRoot: parent}, child)
	idx.AddBlock(&Block{ParentRoot: parent}, child)

	got := idx.Children(parent)
	if len(got) != 1 {
		t.Errorf("expected a single child after duplicate AddBlock, got %d", len(got))
	}
}

func TestChildIndex_ChildrenOfUnknownParentIsEmpty(t *testing.T) {
	idx := NewChildIndex()
	if got := idx.Children(BlockRoot{0xFF}); got != nil {
		t.Errorf("expected nil children for unknown parent, got %v", got)
	}
}

func TestChildIndex_LeavesTracksTips(t *testing.T) {
	genesis := BlockRoot{0x00}
	a := BlockRoot{0x01}
	b := BlockRoot{0x02}

	idx := NewChildIndex()
	idx.AddBlock(&Block{ParentRoot: genesis}, a)

	want := []BlockRoot{a}
	if got := idx.Leaves(); !reflect.DeepEqual(got, want) {
		t.Errorf("Leaves() = %v, want %v", got, want)
	}

	idx.AddBlock(&Block{ParentRoot: a}, b)

	want = []BlockRoot{b}
	if got := idx.Leaves(); !reflect.DeepEqual(got, want) {
		t.Errorf("after extending the chain, Leaves() = %v, want %v", got, want)
	}
}

func TestChildIndex_LeavesBranchesOnFork(t *testing.T) {
	genesis := BlockRoot{0x00}
	left := BlockRoot{0x01}
	right := BlockRoot{0x02}

	idx := NewChildIndex()
	idx.AddBlock(&Block{ParentRoot: genesis}, left)
	idx.AddBlock(&Block{ParentRoot: genesis}, right)

	want := []BlockRoot{left, right}
	got := idx.Leaves()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Leaves() = %v, want %v", got, want)
	}
}
