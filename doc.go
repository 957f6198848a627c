// Package darkboard is the Composition Root for the Darkboard sticky-notes board.
//
// It connects the note store (Domain Layer) with the notes file adapter
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Darkboard is a canvas of small cards. A double-click drops a fresh note,
// its title is confirmed, its body edited in place, and it can be pinned or
// closed. The whole board lives in memory; the notes file is read once when
// the board opens and written once when it closes.
//
// Features:
//
//   - **Bounded Board**: At most 256 notes, ids assigned first-fit.
//   - **One Pending Title**: A new note cannot be created while another awaits its title.
//   - **Soft Delete**: Closed notes stay in memory until the next flush and never reach disk.
//   - **Safe Files**: Atomic writes, and a truncated file still yields the notes before the damage.
//   - **Portable**: Export and import as JSON, YAML, CSV or Markdown.
//
// Usage:
//
//	svc, err := darkboard.Open(ctx, "./notes.dat",
//		darkboard.WithLogger(logger),
//	)
//
//	id, _, err := svc.Store().CreateNote(core.Position{X: 40, Y: 40})
//	svc.Store().SetTitle(id, "Groceries")
//	svc.Store().ConfirmTitle(id)
//
//	err = svc.Flush(ctx)
package darkboard
