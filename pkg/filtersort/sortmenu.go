package filtersort

// SortField declares a sortable field: the stable name emitted to
// listeners and the display label a menu would render.
type SortField struct {
	Name    string
	Display string
}

// SortState is a snapshot of the active sort.
type SortState struct {
	Field     string
	Ascending bool
}

// MenuItem is a presentation-ready row of the sort menu.
type MenuItem struct {
	Name    string
	Display string
	Checked bool
}

// SortMenu holds an exclusive field selection and a sort direction.
// Selecting a field preserves the direction; toggling the direction
// preserves the field. OnSortChanged fires only when the state actually
// changes, so re-selecting the current field or re-setting the current
// direction is silent.
type SortMenu struct {
	fields    []SortField
	field     string
	ascending bool

	// OnSortChanged receives the field name and direction after either
	// actually changes.
	OnSortChanged func(field string, ascending bool)
}

// NewSortMenu creates a sort menu over the declared fields. The initial
// selection is defaultField, or the first declared field when defaultField
// is empty. The initial state does not emit.
func NewSortMenu(fields []SortField, defaultField string, ascending bool) *SortMenu {
	m := &SortMenu{
		fields:    append([]SortField(nil), fields...),
		field:     defaultField,
		ascending: ascending,
	}
	if m.field == "" && len(m.fields) > 0 {
		m.field = m.fields[0].Name
	}
	return m
}

// SelectField switches the sort field, preserving the direction. Names
// outside the declared fields are accepted as the active sort but render
// unchecked in Items.
func (m *SortMenu) SelectField(name string) {
	if name == m.field {
		return
	}
	m.field = name
	m.emit()
}

// SetAscending sets the sort direction, emitting only on an actual change.
func (m *SortMenu) SetAscending(ascending bool) {
	if ascending == m.ascending {
		return
	}
	m.ascending = ascending
	m.emit()
}

// ToggleDirection flips the sort direction.
func (m *SortMenu) ToggleDirection() {
	m.ascending = !m.ascending
	m.emit()
}

// CurrentSort returns the active sort snapshot.
func (m *SortMenu) CurrentSort() SortState {
	return SortState{Field: m.field, Ascending: m.ascending}
}

// Items returns the declared fields with the active one checked. A field
// selection outside the declared list leaves every item unchecked.
func (m *SortMenu) Items() []MenuItem {
	items := make([]MenuItem, len(m.fields))
	for i, f := range m.fields {
		items[i] = MenuItem{Name: f.Name, Display: f.Display, Checked: f.Name == m.field}
	}
	return items
}

func (m *SortMenu) emit() {
	if fn := m.OnSortChanged; fn != nil {
		fn(m.field, m.ascending)
	}
}
