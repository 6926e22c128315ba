package githist

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records created commits in memory so rewrite behavior can be
// verified without a real repository.
type fakeStore struct {
	created []fakeCommit
	branch  string
	tip     CommitID
	seq     byte
}

type fakeCommit struct {
	id        CommitID
	author    Signature
	committer Signature
	message   string
	tree      plumbing.Hash
	parents   []CommitID
}

func (s *fakeStore) CreateCommit(author, committer Signature, message string, tree plumbing.Hash, parents []CommitID) (CommitID, error) {
	s.seq++
	var h plumbing.Hash
	h[0] = 0xaa
	h[1] = s.seq
	id := CommitID(h)
	s.created = append(s.created, fakeCommit{
		id:        id,
		author:    author,
		committer: committer,
		message:   message,
		tree:      tree,
		parents:   parents,
	})
	return id, nil
}

func (s *fakeStore) UpdateBranch(branch string, id CommitID, logMessage string) error {
	s.branch = branch
	s.tip = id
	return nil
}

func (s *fakeStore) find(id CommitID) *fakeCommit {
	for i := range s.created {
		if s.created[i].id == id {
			return &s.created[i]
		}
	}
	return nil
}

func testID(b byte) CommitID {
	var h plumbing.Hash
	h[0] = b
	return CommitID(h)
}

func testTree(b byte) plumbing.Hash {
	var h plumbing.Hash
	h[19] = b
	return h
}

var testDate = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

func testCommit(id byte, summary string, parents ...CommitID) CommitData {
	cid := testID(id)
	return CommitData{
		ID:            cid,
		ShortHash:     cid.String(),
		Author:        Person{Name: "Test Author", Email: "test@example.com"},
		AuthorDate:    testDate,
		Committer:     Person{Name: "Test Author", Email: "test@example.com"},
		CommitterDate: testDate,
		Message:       summary + "\n",
		Summary:       summary,
		ParentIDs:     parents,
		TreeID:        testTree(id),
		IsMerge:       len(parents) > 1,
	}
}

// linearHistory builds C1(oldest) <- C2 <- C3(newest). Display order is
// newest first, matching what the repository loader returns.
func linearHistory() ([]CommitData, []CommitID) {
	c1 := testCommit(1, "First commit")
	c2 := testCommit(2, "Second commit", c1.ID)
	c3 := testCommit(3, "Third commit", c2.ID)
	commits := []CommitData{c3, c2, c1}
	order := []CommitID{c3.ID, c2.ID, c1.ID}
	return commits, order
}

func TestRewriteDeleteMiddleCommit(t *testing.T) {
	commits, order := linearHistory()
	store := &fakeStore{}

	deleted := map[CommitID]struct{}{testID(2): {}}
	err := RewriteHistory(store, commits, nil, deleted, order, "main")
	require.NoError(t, err)

	// Only C1 and C3 survive.
	require.Len(t, store.created, 2)
	newC1 := store.created[0]
	newC3 := store.created[1]

	// C3' is reparented onto C1'.
	require.Len(t, newC3.parents, 1)
	assert.Equal(t, newC1.id, newC3.parents[0])
	assert.Empty(t, newC1.parents)

	// Trees are carried over unchanged.
	assert.Equal(t, testTree(1), newC1.tree)
	assert.Equal(t, testTree(3), newC3.tree)

	// Branch tip is C3'.
	assert.Equal(t, "main", store.branch)
	assert.Equal(t, newC3.id, store.tip)

	// No deleted id survives as a parent anywhere.
	for _, c := range store.created {
		for _, p := range c.parents {
			assert.NotEqual(t, testID(2), p)
		}
	}
}

func TestRewriteEditWithSyncedCommitter(t *testing.T) {
	commits, order := linearHistory()
	store := &fakeStore{}

	email := "new@example.com"
	mods := map[CommitID]*Modifications{
		testID(3): {AuthorEmail: &email, CommitterEmail: &email},
	}

	err := RewriteHistory(store, commits, mods, nil, order, "main")
	require.NoError(t, err)
	require.Len(t, store.created, 3)

	tip := store.find(store.tip)
	require.NotNil(t, tip)
	assert.Equal(t, "new@example.com", tip.author.Email)
	assert.Equal(t, "new@example.com", tip.committer.Email)
	assert.Equal(t, "Test Author", tip.author.Name)

	// Untouched commits keep their original metadata and trees.
	assert.Equal(t, "test@example.com", store.created[0].author.Email)
	assert.Equal(t, testTree(1), store.created[0].tree)
}

func TestRewriteDeleteRootReparentsToNothing(t *testing.T) {
	commits, order := linearHistory()
	store := &fakeStore{}

	deleted := map[CommitID]struct{}{testID(1): {}}
	err := RewriteHistory(store, commits, nil, deleted, order, "main")
	require.NoError(t, err)
	require.Len(t, store.created, 2)

	// C2' becomes the new root.
	assert.Empty(t, store.created[0].parents)
}

func TestRewriteDeleteAllFails(t *testing.T) {
	commits, order := linearHistory()
	store := &fakeStore{}

	deleted := map[CommitID]struct{}{
		testID(1): {},
		testID(2): {},
		testID(3): {},
	}
	err := RewriteHistory(store, commits, nil, deleted, order, "main")
	require.Error(t, err)
	var rwErr *RewriteError
	assert.ErrorAs(t, err, &rwErr)
	assert.Empty(t, store.created)
	assert.Empty(t, store.branch)
}

func TestRewriteUnknownCommitInOrder(t *testing.T) {
	commits, order := linearHistory()
	store := &fakeStore{}

	order = append(order, testID(9))
	err := RewriteHistory(store, commits, nil, nil, order, "main")
	var notFound *CommitNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, testID(9), notFound.ID)
}

func TestRewriteReorder(t *testing.T) {
	commits, _ := linearHistory()
	store := &fakeStore{}

	// Swap C2 and C3 in display order: new history C1 <- C3 <- C2.
	order := []CommitID{testID(2), testID(3), testID(1)}
	err := RewriteHistory(store, commits, nil, nil, order, "main")
	require.NoError(t, err)
	require.Len(t, store.created, 3)

	assert.Equal(t, "First commit\n", store.created[0].message)
	assert.Equal(t, "Third commit\n", store.created[1].message)
	assert.Equal(t, "Second commit\n", store.created[2].message)
	assert.Equal(t, store.created[2].id, store.tip)
}

func TestRewriteMergeParentsPreserved(t *testing.T) {
	c1 := testCommit(1, "Root")
	c2 := testCommit(2, "Branch a", c1.ID)
	c3 := testCommit(3, "Branch b", c1.ID)
	c4 := testCommit(4, "Merge", c2.ID, c3.ID)
	commits := []CommitData{c4, c3, c2, c1}
	order := []CommitID{c4.ID, c3.ID, c2.ID, c1.ID}

	store := &fakeStore{}
	err := RewriteHistory(store, commits, nil, nil, order, "main")
	require.NoError(t, err)

	merge := store.find(store.tip)
	require.NotNil(t, merge)
	require.Len(t, merge.parents, 2)
}

func TestRewriteDeletedMergeParentExpands(t *testing.T) {
	// Deleting the merge commit reparents its child onto both merge parents.
	c1 := testCommit(1, "Root")
	c2 := testCommit(2, "Branch a", c1.ID)
	c3 := testCommit(3, "Branch b", c1.ID)
	c4 := testCommit(4, "Merge", c2.ID, c3.ID)
	c5 := testCommit(5, "After merge", c4.ID)
	commits := []CommitData{c5, c4, c3, c2, c1}
	order := []CommitID{c5.ID, c4.ID, c3.ID, c2.ID, c1.ID}

	store := &fakeStore{}
	deleted := map[CommitID]struct{}{c4.ID: {}}
	err := RewriteHistory(store, commits, nil, deleted, order, "main")
	require.NoError(t, err)

	tip := store.find(store.tip)
	require.NotNil(t, tip)
	require.Len(t, tip.parents, 2)
	for _, p := range tip.parents {
		assert.NotEqual(t, c4.ID, p)
	}
}

func TestOrderChanged(t *testing.T) {
	a := testID(1)
	b := testID(2)

	assert.False(t, OrderChanged([]CommitID{a, b}, []CommitID{a, b}))
	assert.True(t, OrderChanged([]CommitID{a, b}, []CommitID{b, a}))
	assert.True(t, OrderChanged([]CommitID{a}, []CommitID{a, b}))
}

func TestCountModified(t *testing.T) {
	mods := map[CommitID]*Modifications{}
	assert.Equal(t, 0, CountModified(mods))

	mods[testID(1)] = &Modifications{}
	assert.Equal(t, 0, CountModified(mods))

	name := "New Author"
	mods[testID(1)] = &Modifications{AuthorName: &name}
	assert.Equal(t, 1, CountModified(mods))

	msg := "New message"
	mods[testID(2)] = &Modifications{Message: &msg}
	assert.Equal(t, 2, CountModified(mods))
}

func TestChangeSummary(t *testing.T) {
	commits, order := linearHistory()

	t.Run("no changes", func(t *testing.T) {
		summary := ChangeSummary(commits, nil, nil, order, order)
		assert.Empty(t, summary)
	})

	t.Run("modifications listed per commit", func(t *testing.T) {
		name := "New Author"
		email := "new@example.com"
		mods := map[CommitID]*Modifications{
			testID(3): {AuthorName: &name, AuthorEmail: &email},
		}
		summary := ChangeSummary(commits, mods, nil, order, order)
		require.NotEmpty(t, summary)
		assert.Contains(t, summary[0], "1 commit(s) with modified metadata")
		assert.Contains(t, summary[1], testID(3).String())
		assert.Contains(t, summary[1], "author name")
		assert.Contains(t, summary[1], "author email")
	})

	t.Run("reorder noticed", func(t *testing.T) {
		reordered := []CommitID{order[1], order[0], order[2]}
		summary := ChangeSummary(commits, nil, nil, order, reordered)
		require.Len(t, summary, 1)
		assert.Contains(t, summary[0], "order has been changed")
	})

	t.Run("deletions counted", func(t *testing.T) {
		deleted := map[CommitID]struct{}{testID(2): {}}
		summary := ChangeSummary(commits, nil, deleted, order, order)
		require.Len(t, summary, 1)
		assert.Contains(t, summary[0], "1 commit(s) will be deleted")
	})

	t.Run("long modification list truncated", func(t *testing.T) {
		var commits []CommitData
		var order []CommitID
		mods := map[CommitID]*Modifications{}
		msg := "Modified"
		for i := byte(1); i <= 10; i++ {
			c := testCommit(i, "Commit")
			commits = append(commits, c)
			order = append(order, c.ID)
			mods[c.ID] = &Modifications{Message: &msg}
		}
		summary := ChangeSummary(commits, mods, nil, order, order)
		assert.Contains(t, summary[len(summary)-1], "... and 5 more")
	})
}
