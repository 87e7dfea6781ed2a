package ui

import "testing"

func TestPickerFilterNarrowsAndClampsCursor(t *testing.T) {
	p := NewPicker([]PickerItem{
		{Name: "Browser Cache"}, {Name: "Windows Temp"}, {Name: "Browser History"},
	})
	p.MoveDown()
	p.MoveDown()
	if p.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", p.Cursor())
	}

	p.Filter("browser")
	if len(p.Filtered()) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(p.Filtered()))
	}
	if p.Cursor() != 1 {
		t.Fatalf("expected cursor clamped to 1, got %d", p.Cursor())
	}
}

func TestPickerSelectedNilWhenEmpty(t *testing.T) {
	p := NewPicker([]PickerItem{{Name: "Browser Cache"}})
	p.Filter("nonexistent")
	if p.Selected() != nil {
		t.Fatal("expected nil selection on an empty filtered list")
	}
}

func TestPickerMoveWrapsAround(t *testing.T) {
	p := NewPicker([]PickerItem{{Name: "a"}, {Name: "b"}})
	p.MoveUp()
	if p.Cursor() != 1 {
		t.Fatalf("expected wraparound to last index, got %d", p.Cursor())
	}
	p.MoveDown()
	if p.Cursor() != 0 {
		t.Fatalf("expected wraparound to first index, got %d", p.Cursor())
	}
}
