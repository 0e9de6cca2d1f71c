package domain

// Record is one importable row. The client treats record contents as
// opaque, the backend owns the schema.
type Record map[string]interface{}

// ImportDataset is a structured export bundle. Every sequence is
// optional, an absent sequence contributes nothing to the unit count.
type ImportDataset struct {
	Messages      []Record `json:"messages,omitempty"`
	SessionGroups []Record `json:"sessionGroups,omitempty"`
	Sessions      []Record `json:"sessions,omitempty"`
	Topics        []Record `json:"topics,omitempty"`
}

// UnitCount returns the number of importable units in the dataset.
func (d *ImportDataset) UnitCount() int {
	return len(d.Messages) + len(d.SessionGroups) + len(d.Sessions) + len(d.Topics)
}

// RelationalImportDataset maps a table name to its ordered rows.
type RelationalImportDataset map[string][]Record

// UnitCount returns the total number of rows across all tables.
func (d RelationalImportDataset) UnitCount() int {
	var total int
	for _, rows := range d {
		total += len(rows)
	}
	return total
}
