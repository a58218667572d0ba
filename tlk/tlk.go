// Package tlk provides the in-memory representation for TLK string table
// resources. The patch engine only ever appends to a string table, so the
// model is a flat append-only entry list. Entry positions are the string
// references handed out to the rest of the run.
package tlk

type Entry struct {
	Text     string
	Feminine string
	Sound    string
}

type Table struct {
	Entries []Entry
}

func New() *Table {
	return &Table{}
}

// Append adds an entry and returns its string reference, the 0-based
// position in the table.
func (tb *Table) Append(e Entry) int32 {
	tb.Entries = append(tb.Entries, e)
	return int32(len(tb.Entries) - 1)
}

func (tb *Table) Len() int {
	return len(tb.Entries)
}

func (tb *Table) Clone() *Table {
	return &Table{Entries: append([]Entry(nil), tb.Entries...)}
}
