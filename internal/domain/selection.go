package domain

// Selection is the set of invoice IDs picked for a bulk action.
// It is independent of the collection: IDs that no longer exist are kept
// and simply match nothing when a transition is applied.
// The zero value is an empty selection ready for use.
type Selection struct {
	ids   map[string]struct{}
	order []string
}

// NewSelection creates a selection holding ids
func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// Toggle inserts id if absent and removes it if present
func (s *Selection) Toggle(id string) {
	if s.Contains(id) {
		s.remove(id)
		return
	}
	s.add(id)
}

// ToggleAll clears the selection when its size equals the collection size,
// otherwise selects every invoice of the collection. Sizes are compared, not
// members, so a selection holding stale IDs can be cleared early.
func (s *Selection) ToggleAll(invoices []Invoice) {
	if s.Len() == len(invoices) {
		s.Clear()
		return
	}
	s.SelectAll(invoices)
}

// SelectAll replaces the selection with every invoice of the collection
func (s *Selection) SelectAll(invoices []Invoice) {
	s.Clear()
	for _, inv := range invoices {
		s.add(inv.ID)
	}
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = nil
	s.order = nil
}

// Contains reports whether id is selected
func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected IDs
func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns the selected IDs in the order they were selected
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// AllSelected reports whether every invoice of the collection is selected
func (s *Selection) AllSelected(invoices []Invoice) bool {
	if len(invoices) == 0 {
		return false
	}
	for _, inv := range invoices {
		if !s.Contains(inv.ID) {
			return false
		}
	}
	return true
}

func (s *Selection) add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) remove(id string) {
	delete(s.ids, id)
	for n, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:n], s.order[n+1:]...)
			return
		}
	}
}
