package session

import (
	"fmt"
	"log/slog"

	"mend/githist"
)

// ApplyEdit validates a new field value and, if it differs from the
// original, writes it into the overlay of every target commit (resolved via
// CommitsToEdit) as one undoable transaction. Returns the number of commits
// updated. Validation failures leave the session untouched so the caller
// can keep the user in editing mode.
func (s *Session) ApplyEdit(field githist.Field, value, original string) (int, error) {
	if field.IsEmail() {
		if err := githist.ValidateEmail(value); err != nil {
			return 0, err
		}
	}
	if field.IsDate() {
		if _, err := githist.ParseDate(value); err != nil {
			return 0, err
		}
	}

	if value == original {
		s.ClearVisualEditTargets()
		return 0, nil
	}

	targets := s.CommitsToEdit()
	if len(targets) == 0 {
		s.ClearVisualEditTargets()
		return 0, nil
	}

	s.SaveUndo(fmt.Sprintf("Edit %s on %d commit(s)", field.DisplayName(), len(targets)))

	for _, id := range targets {
		s.applyFieldEdit(id, field, value)
	}
	s.ClearVisualEditTargets()

	slog.Debug("applied field edit",
		"field", field.DisplayName(),
		"commits", len(targets))
	return len(targets), nil
}

// applyFieldEdit writes one validated value into one overlay. Author edits
// mirror into the matching committer field when sync is enabled; the
// overlay is the single source of truth, so the mirroring happens here
// rather than at rewrite time.
func (s *Session) applyFieldEdit(id githist.CommitID, field githist.Field, value string) {
	mods := s.ModificationsFor(id)

	switch field {
	case githist.FieldAuthorName:
		mods.AuthorName = strptr(value)
		if s.SyncAuthorToCommitter {
			mods.CommitterName = strptr(value)
		}
	case githist.FieldAuthorEmail:
		mods.AuthorEmail = strptr(value)
		if s.SyncAuthorToCommitter {
			mods.CommitterEmail = strptr(value)
		}
	case githist.FieldAuthorDate:
		if t, err := githist.ParseDate(value); err == nil {
			mods.AuthorDate = &t
			if s.SyncAuthorToCommitter {
				when := t
				mods.CommitterDate = &when
			}
		}
	case githist.FieldCommitterName:
		mods.CommitterName = strptr(value)
	case githist.FieldCommitterEmail:
		mods.CommitterEmail = strptr(value)
	case githist.FieldCommitterDate:
		if t, err := githist.ParseDate(value); err == nil {
			mods.CommitterDate = &t
		}
	case githist.FieldMessage:
		mods.Message = strptr(value)
	}
}

func strptr(v string) *string {
	return &v
}
