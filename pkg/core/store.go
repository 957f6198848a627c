package core

import "iter"

// Store is the authoritative in-memory collection of notes.
//
// It is not safe for concurrent use: the store belongs to the goroutine that
// drives the frame loop. Operations addressed by id are silent no-ops when the
// id is unknown or refers to a deleted note, since ids only ever come from the
// notes the store just handed out.
type Store struct {
	// notes keeps insertion order and still holds tombstones.
	notes []*Note
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// CreateNote adds a fresh note at the given position under the lowest free id.
//
// While another note is still waiting for its title to be confirmed, creation
// is suppressed and created is false. ErrCapacityExceeded is returned when all
// MaxNotes ids are taken.
func (s *Store) CreateNote(at Position) (id ID, created bool, err error) {
	if _, pending := s.Pending(); pending {
		return 0, false, nil
	}

	id, ok := s.nextID()
	if !ok {
		return 0, false, ErrCapacityExceeded
	}

	s.notes = append(s.notes, &Note{
		ID:       id,
		Title:    DefaultTitle,
		Body:     DefaultBody,
		State:    StateFresh,
		Position: at,
	})
	return id, true, nil
}

// nextID scans [0, MaxNotes) for the first id not held by a live note.
func (s *Store) nextID() (ID, bool) {
	var used [MaxNotes]bool
	for _, n := range s.notes {
		if n.State != StateDeleted && n.ID.Valid() {
			used[n.ID] = true
		}
	}
	for i := range used {
		if !used[i] {
			return ID(i), true
		}
	}
	return 0, false
}

// find returns the live note with the given id.
func (s *Store) find(id ID) *Note {
	for _, n := range s.notes {
		if n.ID == id && n.State != StateDeleted {
			return n
		}
	}
	return nil
}

// SetTitle replaces the title text.
func (s *Store) SetTitle(id ID, title string) {
	if n := s.find(id); n != nil {
		n.Title = NormalizeTitle(title)
	}
}

// ConfirmTitle ends the title edit of a fresh note.
func (s *Store) ConfirmTitle(id ID) {
	if n := s.find(id); n != nil && n.State == StateFresh {
		n.State = StateViewing
	}
}

// SetPinned locks or unlocks the note position.
func (s *Store) SetPinned(id ID, pinned bool) {
	if n := s.find(id); n != nil {
		n.Pinned = pinned
	}
}

// TogglePin flips the pinned flag.
func (s *Store) TogglePin(id ID) {
	if n := s.find(id); n != nil {
		n.Pinned = !n.Pinned
	}
}

// BeginEdit switches a viewed note to body editing.
// A fresh note has to confirm its title first.
func (s *Store) BeginEdit(id ID) {
	if n := s.find(id); n != nil && n.State == StateViewing {
		n.State = StateEditingBody
	}
}

// CommitEdit stores a new body and leaves body editing.
// Line breaks are folded into spaces before storage.
func (s *Store) CommitEdit(id ID, body string) {
	n := s.find(id)
	if n == nil {
		return
	}
	n.Body = NormalizeBody(body)
	if n.State == StateEditingBody {
		n.State = StateViewing
	}
}

// SoftDelete marks the note as deleted. The note disappears from ActiveNotes
// and is dropped from disk by the next save.
func (s *Store) SoftDelete(id ID) {
	if n := s.find(id); n != nil {
		n.State = StateDeleted
	}
}

// UpdatePosition records where the note was last drawn.
func (s *Store) UpdatePosition(id ID, pos Position) {
	if n := s.find(id); n != nil {
		n.Position = pos
	}
}

// ActiveNotes yields a copy of every live note in insertion order.
// The sequence can be ranged over any number of times.
func (s *Store) ActiveNotes() iter.Seq[Note] {
	return func(yield func(Note) bool) {
		for _, n := range s.notes {
			if n.State == StateDeleted {
				continue
			}
			if !yield(*n) {
				return
			}
		}
	}
}

// Note returns the live note with the given id.
func (s *Store) Note(id ID) (Note, bool) {
	if n := s.find(id); n != nil {
		return *n, true
	}
	return Note{}, false
}

// Len returns the number of live notes.
func (s *Store) Len() int {
	count := 0
	for _, n := range s.notes {
		if n.State != StateDeleted {
			count++
		}
	}
	return count
}

// Pending returns the note whose title is still being edited, if any.
func (s *Store) Pending() (ID, bool) {
	for _, n := range s.notes {
		if n.State == StateFresh {
			return n.ID, true
		}
	}
	return 0, false
}

// Snapshot returns every note, tombstones included, in insertion order.
func (s *Store) Snapshot() []Note {
	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, *n)
	}
	return out
}

// Restore appends previously saved notes.
//
// Deleted records, ids outside the id space and ids already held by a live
// note are rejected and returned. Only the first fresh note keeps its state;
// later ones are demoted to viewing.
func (s *Store) Restore(notes []Note) (rejected []Note) {
	_, pending := s.Pending()
	for _, n := range notes {
		if n.State == StateDeleted || !n.ID.Valid() || s.find(n.ID) != nil {
			rejected = append(rejected, n)
			continue
		}

		restored := n
		restored.Title = NormalizeTitle(n.Title)
		restored.Body = NormalizeBody(n.Body)
		if restored.State == StateFresh {
			if pending {
				restored.State = StateViewing
			}
			pending = true
		}
		s.notes = append(s.notes, &restored)
	}
	return rejected
}

// Import appends a note coming from outside the board under a newly
// allocated id. The original id and state are discarded.
func (s *Store) Import(n Note) (ID, error) {
	id, ok := s.nextID()
	if !ok {
		return 0, ErrCapacityExceeded
	}
	s.notes = append(s.notes, &Note{
		ID:       id,
		Title:    NormalizeTitle(n.Title),
		Body:     NormalizeBody(n.Body),
		State:    StateViewing,
		Pinned:   n.Pinned,
		Position: n.Position,
	})
	return id, nil
}

// Compact drops tombstones from memory.
func (s *Store) Compact() {
	live := s.notes[:0]
	for _, n := range s.notes {
		if n.State != StateDeleted {
			live = append(live, n)
		}
	}
	clear(s.notes[len(live):])
	s.notes = live
}
