package schema

// PersonTable represents the 'content.person' table
type PersonTable struct {
	Table     string
	ID        string
	FullName  string
	Modified  string
	CreatedAt string
}

// Person is the schema definition for content.person
var Person = PersonTable{
	Table:     "content.person",
	ID:        "id",
	FullName:  "first_name",
	Modified:  "modified",
	CreatedAt: "created",
}

func (t PersonTable) Columns() []string {
	return []string{t.ID, t.Modified}
}
