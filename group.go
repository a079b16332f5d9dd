package bookshelf

// Row is a display group of copies of the same item.
type Row struct {
	Entry           // first member.
	Members []Entry // all copies, including the first one.
}

// Count returns the number of copies in the row.
func (r Row) Count() int { return len(r.Members) }

// GroupOptions configures Group.
type GroupOptions struct {
	Disabled bool    // one row per item.
	Key      KeyFunc // identity within a run of equal titles, defaults to VariantIdentity.
}

// Group collapses copies of the same item into rows.
//
// Entries are grouped by runs of equal names: a new group starts whenever the
// name changes from the previous entry. Within a run, entries are sub-grouped
// by their identity key, in order of first appearance.
//
// Grouping only collapses adjacent names, therefore entries must be sorted by
// name. Entries sorted by price may split copies of the same item into
// separate rows.
func Group(entries []Entry, opt GroupOptions) []Row {
	rows := make([]Row, 0, len(entries))
	if opt.Disabled {
		for _, e := range entries {
			rows = append(rows, Row{Entry: e, Members: []Entry{e}})
		}
		return rows
	}

	key := opt.Key
	if key == nil {
		key = VariantIdentity.Of
	}

	// index of the row of each key in the current run.
	var run map[string]int
	for i, e := range entries {
		if i == 0 || e.Item.Name != entries[i-1].Item.Name {
			run = make(map[string]int)
		}
		k := key(e)
		if j, ok := run[k]; ok {
			rows[j].Members = append(rows[j].Members, e)
			continue
		}
		run[k] = len(rows)
		rows = append(rows, Row{Entry: e, Members: []Entry{e}})
	}
	return rows
}
