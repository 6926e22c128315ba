package githist

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ShortHashLen is the display length for abbreviated commit hashes.
const ShortHashLen = 7

// CommitID identifies a commit by its object hash. It is comparable and
// usable as a map key.
type CommitID plumbing.Hash

// String returns the abbreviated display form of the id.
func (id CommitID) String() string {
	return plumbing.Hash(id).String()[:ShortHashLen]
}

// Full returns the full 40-character hash.
func (id CommitID) Full() string {
	return plumbing.Hash(id).String()
}

// Hash converts back to the underlying plumbing hash.
func (id CommitID) Hash() plumbing.Hash {
	return plumbing.Hash(id)
}

// Person is an author or committer identity.
type Person struct {
	Name  string
	Email string
}

// String formats as "Name <email>".
func (p Person) String() string {
	return fmt.Sprintf("%s <%s>", p.Name, p.Email)
}

// CommitData is an immutable snapshot of a commit loaded at session start.
// Edits are never written here; they live in Modifications overlays.
type CommitData struct {
	ID        CommitID
	ShortHash string

	Author     Person
	AuthorDate time.Time

	Committer     Person
	CommitterDate time.Time

	// Message is the full commit message; Summary its first line.
	Message string
	Summary string

	ParentIDs []CommitID
	TreeID    plumbing.Hash

	// IsMerge is true when the commit has more than one parent.
	IsMerge bool
}

// NewCommitData builds a snapshot from a go-git commit object.
func NewCommitData(c *object.Commit) CommitData {
	parents := make([]CommitID, len(c.ParentHashes))
	for i, h := range c.ParentHashes {
		parents[i] = CommitID(h)
	}

	summary := c.Message
	if idx := strings.IndexByte(summary, '\n'); idx >= 0 {
		summary = summary[:idx]
	}

	return CommitData{
		ID:            CommitID(c.Hash),
		ShortHash:     c.Hash.String()[:ShortHashLen],
		Author:        Person{Name: c.Author.Name, Email: c.Author.Email},
		AuthorDate:    c.Author.When,
		Committer:     Person{Name: c.Committer.Name, Email: c.Committer.Email},
		CommitterDate: c.Committer.When,
		Message:       c.Message,
		Summary:       strings.TrimRight(summary, "\r"),
		ParentIDs:     parents,
		TreeID:        c.TreeHash,
		IsMerge:       len(c.ParentHashes) > 1,
	}
}

// FormatAuthorDate is the compact table form of the author date.
func (c *CommitData) FormatAuthorDate() string {
	return c.AuthorDate.Format("2006-01-02 15:04")
}

// FormatAuthorDateFull is the canonical editable form of the author date.
func (c *CommitData) FormatAuthorDateFull() string {
	return FormatDate(c.AuthorDate)
}

// FormatCommitterDateFull is the canonical editable form of the committer date.
func (c *CommitData) FormatCommitterDateFull() string {
	return FormatDate(c.CommitterDate)
}

// Modifications is a sparse overlay of pending edits to one commit. A nil
// pointer field means "use the original value".
type Modifications struct {
	AuthorName     *string
	AuthorEmail    *string
	AuthorDate     *time.Time
	CommitterName  *string
	CommitterEmail *string
	CommitterDate  *time.Time
	Message        *string
}

// IsEmpty reports whether no field is overridden.
func (m *Modifications) IsEmpty() bool {
	return m == nil ||
		(m.AuthorName == nil &&
			m.AuthorEmail == nil &&
			m.AuthorDate == nil &&
			m.CommitterName == nil &&
			m.CommitterEmail == nil &&
			m.CommitterDate == nil &&
			m.Message == nil)
}

// HasModifications reports whether any field is overridden.
func (m *Modifications) HasModifications() bool {
	return !m.IsEmpty()
}

// FieldCount returns how many fields are overridden.
func (m *Modifications) FieldCount() int {
	count := 0
	for _, f := range Fields() {
		if m.FieldSet(f) {
			count++
		}
	}
	return count
}

// FieldSet reports whether the overlay overrides the given field.
func (m *Modifications) FieldSet(f Field) bool {
	if m == nil {
		return false
	}
	switch f {
	case FieldAuthorName:
		return m.AuthorName != nil
	case FieldAuthorEmail:
		return m.AuthorEmail != nil
	case FieldAuthorDate:
		return m.AuthorDate != nil
	case FieldCommitterName:
		return m.CommitterName != nil
	case FieldCommitterEmail:
		return m.CommitterEmail != nil
	case FieldCommitterDate:
		return m.CommitterDate != nil
	case FieldMessage:
		return m.Message != nil
	}
	return false
}

// FieldNames lists the display names of overridden fields, in field order.
func (m *Modifications) FieldNames() []string {
	if m == nil {
		return nil
	}
	var names []string
	if m.AuthorName != nil {
		names = append(names, "author name")
	}
	if m.AuthorEmail != nil {
		names = append(names, "author email")
	}
	if m.AuthorDate != nil {
		names = append(names, "author date")
	}
	if m.CommitterName != nil {
		names = append(names, "committer name")
	}
	if m.CommitterEmail != nil {
		names = append(names, "committer email")
	}
	if m.CommitterDate != nil {
		names = append(names, "committer date")
	}
	if m.Message != nil {
		names = append(names, "message")
	}
	return names
}

// Clone returns a deep copy, used by undo snapshots.
func (m *Modifications) Clone() *Modifications {
	if m == nil {
		return nil
	}
	out := &Modifications{}
	out.AuthorName = cloneStr(m.AuthorName)
	out.AuthorEmail = cloneStr(m.AuthorEmail)
	out.AuthorDate = cloneTime(m.AuthorDate)
	out.CommitterName = cloneStr(m.CommitterName)
	out.CommitterEmail = cloneStr(m.CommitterEmail)
	out.CommitterDate = cloneTime(m.CommitterDate)
	out.Message = cloneStr(m.Message)
	return out
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// EffectiveMessage returns the overridden message, or the original.
func (m *Modifications) EffectiveMessage(original string) string {
	if m != nil && m.Message != nil {
		return *m.Message
	}
	return original
}

// EffectiveSummary returns the first line of the effective message.
func (m *Modifications) EffectiveSummary(originalSummary string) string {
	if m == nil || m.Message == nil {
		return originalSummary
	}
	line, _, _ := strings.Cut(*m.Message, "\n")
	return line
}

// Field enumerates the seven editable commit attributes.
type Field int

const (
	FieldAuthorName Field = iota
	FieldAuthorEmail
	FieldAuthorDate
	FieldCommitterName
	FieldCommitterEmail
	FieldCommitterDate
	FieldMessage
)

// Fields lists every editable field in display order.
func Fields() []Field {
	return []Field{
		FieldAuthorName,
		FieldAuthorEmail,
		FieldAuthorDate,
		FieldCommitterName,
		FieldCommitterEmail,
		FieldCommitterDate,
		FieldMessage,
	}
}

// DisplayName is the long label used in dialogs and undo descriptions.
func (f Field) DisplayName() string {
	switch f {
	case FieldAuthorName:
		return "Author Name"
	case FieldAuthorEmail:
		return "Author Email"
	case FieldAuthorDate:
		return "Author Date"
	case FieldCommitterName:
		return "Committer Name"
	case FieldCommitterEmail:
		return "Committer Email"
	case FieldCommitterDate:
		return "Committer Date"
	case FieldMessage:
		return "Commit Message"
	}
	return "Unknown"
}

// IsDate reports whether the field holds a timestamp and needs date validation.
func (f Field) IsDate() bool {
	return f == FieldAuthorDate || f == FieldCommitterDate
}

// IsEmail reports whether the field needs email validation.
func (f Field) IsEmail() bool {
	return f == FieldAuthorEmail || f == FieldCommitterEmail
}

// IsMultiline reports whether the field is edited in an external editor.
func (f Field) IsMultiline() bool {
	return f == FieldMessage
}
