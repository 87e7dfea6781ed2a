package ui

import "strings"

// PickerItem is one selectable entry in a Picker list — a junk category,
// an installed app, anything with a name to filter by.
type PickerItem struct {
	Name        string
	Description string
}

// Picker is a dumb filterable-list component: it exposes methods and no
// Update/View of its own — the caller's bubbletea model drives Open/Close/
// Filter/MoveUp/MoveDown and renders Filtered()/Cursor() itself.
type Picker struct {
	all      []PickerItem
	filtered []PickerItem
	cursor   int
	open     bool
	query    string
}

// NewPicker creates a Picker over the given item list.
func NewPicker(items []PickerItem) *Picker {
	return &Picker{all: items, filtered: items}
}

// Open shows the picker and resets the filter.
func (p *Picker) Open() {
	p.open = true
	p.query = ""
	p.cursor = 0
	p.filtered = p.all
}

// Close hides the picker.
func (p *Picker) Close() {
	p.open = false
	p.query = ""
	p.cursor = 0
}

// IsOpen reports whether the picker is visible.
func (p *Picker) IsOpen() bool {
	return p.open
}

// Filter narrows the item list to those whose Name contains query
// (case-insensitive).
func (p *Picker) Filter(query string) {
	p.query = strings.ToLower(query)
	p.filtered = make([]PickerItem, 0, len(p.all))
	for _, item := range p.all {
		if p.query == "" || strings.Contains(strings.ToLower(item.Name), p.query) {
			p.filtered = append(p.filtered, item)
		}
	}
	if p.cursor >= len(p.filtered) {
		if len(p.filtered) > 0 {
			p.cursor = len(p.filtered) - 1
		} else {
			p.cursor = 0
		}
	}
}

// MoveUp moves the cursor up, wrapping around.
func (p *Picker) MoveUp() {
	if len(p.filtered) == 0 {
		return
	}
	if p.cursor > 0 {
		p.cursor--
	} else {
		p.cursor = len(p.filtered) - 1
	}
}

// MoveDown moves the cursor down, wrapping around.
func (p *Picker) MoveDown() {
	if len(p.filtered) == 0 {
		return
	}
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	} else {
		p.cursor = 0
	}
}

// Selected returns the currently highlighted item, or nil if the filtered
// list is empty.
func (p *Picker) Selected() *PickerItem {
	if len(p.filtered) == 0 {
		return nil
	}
	item := p.filtered[p.cursor]
	return &item
}

// Filtered returns the current filtered item list.
func (p *Picker) Filtered() []PickerItem {
	return p.filtered
}

// Cursor returns the current cursor position within Filtered().
func (p *Picker) Cursor() int {
	return p.cursor
}
