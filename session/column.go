package session

import "mend/githist"

// Column indexes the commit table columns the cursor can focus.
type Column int

const (
	ColumnMark Column = iota
	ColumnHash
	ColumnName
	ColumnEmail
	ColumnDate
	ColumnMessage

	// NumColumns is the total column count.
	NumColumns = 6
)

// Header returns the column title shown in the table.
func (c Column) Header() string {
	switch c {
	case ColumnMark:
		return " "
	case ColumnHash:
		return "Hash"
	case ColumnName:
		return "Name"
	case ColumnEmail:
		return "Email"
	case ColumnDate:
		return "Date"
	case ColumnMessage:
		return "Message"
	}
	return ""
}

// IsEditable reports whether the column maps to an editable field.
func (c Column) IsEditable() bool {
	return c != ColumnMark && c != ColumnHash
}

// EditableField returns the commit field the column edits, if any.
func (c Column) EditableField() (githist.Field, bool) {
	switch c {
	case ColumnName:
		return githist.FieldAuthorName, true
	case ColumnEmail:
		return githist.FieldAuthorEmail, true
	case ColumnDate:
		return githist.FieldAuthorDate, true
	case ColumnMessage:
		return githist.FieldMessage, true
	}
	return 0, false
}

// CellValue returns the effective display value of a cell, with the pending
// overlay taking precedence over the original commit data.
func CellValue(c *githist.CommitData, mods *githist.Modifications, column Column) string {
	switch column {
	case ColumnMark:
		return ""
	case ColumnHash:
		return c.ShortHash
	case ColumnName:
		if mods != nil && mods.AuthorName != nil {
			return *mods.AuthorName
		}
		return c.Author.Name
	case ColumnEmail:
		if mods != nil && mods.AuthorEmail != nil {
			return *mods.AuthorEmail
		}
		return c.Author.Email
	case ColumnDate:
		if mods != nil && mods.AuthorDate != nil {
			return githist.FormatDate(*mods.AuthorDate)
		}
		return c.FormatAuthorDateFull()
	case ColumnMessage:
		return mods.EffectiveMessage(c.Message)
	}
	return ""
}
