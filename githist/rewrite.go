package githist

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// CommitStore is the backend surface the rewrite engine needs: create commit
// objects and force-move a branch ref. Repository implements it; tests use
// an in-memory fake.
type CommitStore interface {
	// CreateCommit writes a new commit object and returns its id. The tree
	// is carried over unchanged from the original commit.
	CreateCommit(author, committer Signature, message string, tree plumbing.Hash, parents []CommitID) (CommitID, error)

	// UpdateBranch force-moves refs/heads/<branch> to the given commit.
	UpdateBranch(branch string, id CommitID, logMessage string) error
}

// Signature pairs an identity with a timestamp, matching what commit
// creation needs.
type Signature struct {
	Person
	When time.Time
}

// RewriteHistory replays the commit graph oldest-first, creating new commit
// objects with the overlay metadata applied, skipping deleted commits and
// reparenting their children onto the deleted commit's own parents. Trees
// are never touched. The branch ref is moved only once every new commit
// exists, so the operation is atomic from the branch's point of view.
//
// commits carries the original metadata, mods the pending overlays, deleted
// the ids to drop, and order the desired display order (newest first).
func RewriteHistory(
	store CommitStore,
	commits []CommitData,
	mods map[CommitID]*Modifications,
	deleted map[CommitID]struct{},
	order []CommitID,
	branch string,
) error {
	lookup := make(map[CommitID]*CommitData, len(commits))
	for i := range commits {
		lookup[commits[i].ID] = &commits[i]
	}

	// Parents of each deleted commit, used to bridge over it when resolving
	// a surviving child's parent set.
	deletedParents := make(map[CommitID][]CommitID, len(deleted))
	for id := range deleted {
		if original, ok := lookup[id]; ok {
			deletedParents[id] = original.ParentIDs
		}
	}

	// Old id -> new id for every commit rewritten so far.
	remap := make(map[CommitID]CommitID, len(order))

	// Display order is newest first; replay oldest first.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if _, gone := deleted[id]; gone {
			continue
		}

		original, ok := lookup[id]
		if !ok {
			return &CommitNotFoundError{ID: id}
		}
		m := mods[id]

		parents := resolveParents(original.ParentIDs, deletedParents, remap)

		author := Signature{
			Person: Person{
				Name:  stringOr(m.authorName(), original.Author.Name),
				Email: stringOr(m.authorEmail(), original.Author.Email),
			},
			When: timeOr(m.authorDate(), original.AuthorDate),
		}
		committer := Signature{
			Person: Person{
				Name:  stringOr(m.committerName(), original.Committer.Name),
				Email: stringOr(m.committerEmail(), original.Committer.Email),
			},
			When: timeOr(m.committerDate(), original.CommitterDate),
		}
		message := m.EffectiveMessage(original.Message)

		newID, err := store.CreateCommit(author, committer, message, original.TreeID, parents)
		if err != nil {
			return &RewriteError{Reason: fmt.Sprintf("creating commit %s", original.ShortHash), Err: err}
		}
		remap[id] = newID

		slog.Debug("rewrote commit",
			"old", original.ShortHash,
			"new", newID.String(),
			"parents", len(parents),
		)
	}

	// The first surviving commit in display order is the new tip.
	var tip CommitID
	found := false
	for _, id := range order {
		if _, gone := deleted[id]; !gone {
			tip = id
			found = true
			break
		}
	}
	if !found {
		return &RewriteError{Reason: "all commits would be deleted"}
	}

	newTip, ok := remap[tip]
	if !ok {
		return &RewriteError{Reason: "new branch tip was not rewritten"}
	}

	if err := store.UpdateBranch(branch, newTip, "mend: rewrite history"); err != nil {
		return &RewriteError{Reason: fmt.Sprintf("updating refs/heads/%s", branch), Err: err}
	}

	slog.Info("history rewritten", "branch", branch, "tip", newTip.String())
	return nil
}

// resolveParents maps a commit's original parent list into the rewritten
// graph: deleted parents are replaced by their own parents (already resolved,
// since replay is oldest-first), and every survivor is translated through
// the remap table.
func resolveParents(
	originals []CommitID,
	deletedParents map[CommitID][]CommitID,
	remap map[CommitID]CommitID,
) []CommitID {
	resolved := make([]CommitID, 0, len(originals))
	for _, p := range originals {
		if grandparents, gone := deletedParents[p]; gone {
			// Known limitation: bridging goes one level only. A
			// grandparent that was itself deleted passes through
			// remapOr unresolved.
			for _, gp := range grandparents {
				resolved = append(resolved, remapOr(remap, gp))
			}
			continue
		}
		resolved = append(resolved, remapOr(remap, p))
	}
	return resolved
}

func remapOr(remap map[CommitID]CommitID, id CommitID) CommitID {
	if mapped, ok := remap[id]; ok {
		return mapped
	}
	return id
}

// OrderChanged reports whether two id sequences differ.
func OrderChanged(original, current []CommitID) bool {
	if len(original) != len(current) {
		return true
	}
	for i := range original {
		if original[i] != current[i] {
			return true
		}
	}
	return false
}

// CountModified returns how many overlays carry at least one override.
func CountModified(mods map[CommitID]*Modifications) int {
	count := 0
	for _, m := range mods {
		if m.HasModifications() {
			count++
		}
	}
	return count
}

// ChangeSummary builds the human-readable apply-confirmation lines: deletion
// and modification counts, a reorder notice, and per-commit field lists for
// the first few modified commits.
func ChangeSummary(
	commits []CommitData,
	mods map[CommitID]*Modifications,
	deleted map[CommitID]struct{},
	originalOrder, currentOrder []CommitID,
) []string {
	var summary []string

	if len(deleted) > 0 {
		summary = append(summary, fmt.Sprintf("%d commit(s) will be deleted", len(deleted)))
	}

	modified := CountModified(mods)
	if modified > 0 {
		summary = append(summary, fmt.Sprintf("%d commit(s) with modified metadata", modified))
	}

	if OrderChanged(originalOrder, currentOrder) {
		summary = append(summary, "commit order has been changed")
	}

	const detailLimit = 5
	shown := 0
	for i := range commits {
		if shown >= detailLimit {
			break
		}
		m := mods[commits[i].ID]
		if !m.HasModifications() {
			continue
		}
		summary = append(summary, fmt.Sprintf("  %s - %s",
			commits[i].ShortHash, strings.Join(m.FieldNames(), ", ")))
		shown++
	}
	if modified > detailLimit {
		summary = append(summary, fmt.Sprintf("  ... and %d more", modified-detailLimit))
	}

	return summary
}

// Nil-safe accessors so the replay loop reads overlays without branching on
// a missing map entry.

func (m *Modifications) authorName() *string {
	if m == nil {
		return nil
	}
	return m.AuthorName
}

func (m *Modifications) authorEmail() *string {
	if m == nil {
		return nil
	}
	return m.AuthorEmail
}

func (m *Modifications) authorDate() *time.Time {
	if m == nil {
		return nil
	}
	return m.AuthorDate
}

func (m *Modifications) committerName() *string {
	if m == nil {
		return nil
	}
	return m.CommitterName
}

func (m *Modifications) committerEmail() *string {
	if m == nil {
		return nil
	}
	return m.CommitterEmail
}

func (m *Modifications) committerDate() *time.Time {
	if m == nil {
		return nil
	}
	return m.CommitterDate
}

func stringOr(override *string, original string) string {
	if override != nil {
		return *override
	}
	return original
}

func timeOr(override *time.Time, original time.Time) time.Time {
	if override != nil {
		return *override
	}
	return original
}
