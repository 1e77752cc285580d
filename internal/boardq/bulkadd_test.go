package boardq

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildBulkCreate_PayloadShape(t *testing.T) {
	sel := NewSelection()
	sel.Add(10)
	sel.Add(20)

	req, err := BuildBulkCreate(3, "2023", sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := BulkCreateRequest{BoardID: 3, QuestionIDs: []int64{10, 20}, Years: "2023"}
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("payload mismatch:\ngot  %+v\nwant %+v", req, want)
	}
}

func TestBuildBulkCreate_Validation(t *testing.T) {
	sel := NewSelection()
	sel.Add(1)

	if _, err := BuildBulkCreate(0, "2023", sel); !errors.Is(err, ErrNoBoard) {
		t.Fatalf("expected ErrNoBoard, got %v", err)
	}
	if _, err := BuildBulkCreate(3, "  ", sel); !errors.Is(err, ErrNoYear) {
		t.Fatalf("expected ErrNoYear, got %v", err)
	}
	if _, err := BuildBulkCreate(3, "2023", NewSelection()); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestSelection_OrderSurvivesPageChanges(t *testing.T) {
	sel := NewSelection()
	// page 1
	sel.Add(10)
	sel.Add(30)
	// page 2
	sel.Add(20)
	// back to page 1; re-selecting is a no-op
	sel.Add(10)

	if !reflect.DeepEqual(sel.IDs(), []int64{10, 30, 20}) {
		t.Fatalf("selection order not preserved: %v", sel.IDs())
	}
}

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelection()
	if on := sel.Toggle(7); !on {
		t.Fatalf("first toggle should select")
	}
	if on := sel.Toggle(7); on {
		t.Fatalf("second toggle should deselect")
	}
	if sel.Len() != 0 {
		t.Fatalf("expected empty selection, got %v", sel.IDs())
	}
}

func TestSelection_SelectAllVisibleOnlyTouchesCurrentPage(t *testing.T) {
	sel := NewSelection()
	sel.Add(99) // selected on another page

	sel.SelectAllVisible([]int64{1, 2, 3})
	if !reflect.DeepEqual(sel.IDs(), []int64{99, 1, 2, 3}) {
		t.Fatalf("unexpected selection: %v", sel.IDs())
	}

	sel.DeselectAllVisible([]int64{1, 2, 3})
	if !reflect.DeepEqual(sel.IDs(), []int64{99}) {
		t.Fatalf("deselect-all must not touch other pages: %v", sel.IDs())
	}
}
