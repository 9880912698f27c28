package schema

// FilmworkTable represents the 'content.filmwork' table
type FilmworkTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Rating      string
	Type        string
	CreatedAt   string
	Modified    string
}

// Filmwork is the schema definition for content.filmwork
var Filmwork = FilmworkTable{
	Table:       "content.filmwork",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Rating:      "rating",
	Type:        "type",
	CreatedAt:   "created",
	Modified:    "modified",
}

func (t FilmworkTable) Columns() []string {
	return []string{t.ID, t.Modified}
}

// MergeColumns returns the filmwork columns the merger's batch join query
// selects, in the same order, grounded on the joined SELECT in the original
// ETL's merger step.
func (t FilmworkTable) MergeColumns() []string {
	return []string{t.ID, t.Title, t.Description, t.Rating, t.Type, t.CreatedAt, t.Modified}
}
