package schema

// FilmworksGenresTable represents the 'content.filmworks_genres' m2m table
type FilmworksGenresTable struct {
	Table      string
	ID         string
	FilmworkID string
	GenreID    string
	CreatedAt  string
}

// FilmworksGenres is the schema definition for content.filmworks_genres
var FilmworksGenres = FilmworksGenresTable{
	Table:      "content.filmworks_genres",
	ID:         "id",
	FilmworkID: "filmwork_id",
	GenreID:    "genre_id",
	CreatedAt:  "created",
}
