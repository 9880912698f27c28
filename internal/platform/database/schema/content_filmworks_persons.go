package schema

// FilmworksPersonsTable represents the 'content.filmworks_persons' m2m table
type FilmworksPersonsTable struct {
	Table      string
	ID         string
	FilmworkID string
	PersonID   string
	Role       string
	CreatedAt  string
}

// FilmworksPersons is the schema definition for content.filmworks_persons
var FilmworksPersons = FilmworksPersonsTable{
	Table:      "content.filmworks_persons",
	ID:         "id",
	FilmworkID: "filmwork_id",
	PersonID:   "person_id",
	Role:       "role",
	CreatedAt:  "created",
}
