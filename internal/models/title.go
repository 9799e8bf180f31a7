package models

type Title struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Rating      *float64  `json:"rating"`
	Description string    `json:"description"`
	Genres      []Genre   `json:"genre"`
	Category    *Category `json:"category"`
}

// TitleFilter narrows title listings. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string // substring match
	Year         int
}
