package schema

// GenreTable represents the 'content.genre' table
type GenreTable struct {
	Table     string
	ID        string
	Name      string
	Modified  string
	CreatedAt string
}

// Genre is the schema definition for content.genre
var Genre = GenreTable{
	Table:     "content.genre",
	ID:        "id",
	Name:      "name",
	Modified:  "modified",
	CreatedAt: "created",
}

func (t GenreTable) Columns() []string {
	return []string{t.ID, t.Modified}
}
