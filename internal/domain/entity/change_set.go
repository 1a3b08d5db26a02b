package entity

// FieldChange holds the old and new value of one monitored field. A nil
// pointer means the field was absent on that side of the diff.
type FieldChange struct {
	Old *string `bson:"old,omitempty" json:"old,omitempty"`
	New *string `bson:"new,omitempty" json:"new,omitempty"`
}

// ChangeSet maps monitored field names to their old/new pair. A field absent
// on both sides never appears; absent-to-present and present-to-absent do.
type ChangeSet map[string]FieldChange

// Has reports whether the field appears in the change set.
func (c ChangeSet) Has(field string) bool {
	_, ok := c[field]
	return ok
}

// HasAny reports whether any of the given fields appear in the change set.
func (c ChangeSet) HasAny(fields ...string) bool {
	for _, f := range fields {
		if c.Has(f) {
			return true
		}
	}
	return false
}
