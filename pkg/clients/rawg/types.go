package rawg

// Wire schema of the RAWG API, defined once for every endpoint. Only id and
// name are required; everything else may be missing from any revision of
// the payload.

type gameList struct {
	Count    *uint32       `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  *[]gameRecord `json:"results"`
}

type gameRecord struct {
	ID              *int64   `json:"id"`
	Name            *string  `json:"name"`
	Slug            *string  `json:"slug"`
	BackgroundImage *string  `json:"background_image"`
	Released        *string  `json:"released"`
	Rating          *float64 `json:"rating"`
	RatingTop       *int     `json:"rating_top"`
	Metacritic      *int     `json:"metacritic"`
	Playtime        *int     `json:"playtime"`

	// Detail endpoint only. description is HTML, description_raw plain text.
	Description    *string `json:"description"`
	DescriptionRaw *string `json:"description_raw"`

	Genres           []taxon         `json:"genres"`
	Platforms        []platformEntry `json:"platforms"`
	ESRBRating       *taxon          `json:"esrb_rating"`
	Tags             []taxon         `json:"tags"`
	ShortScreenshots []screenshot    `json:"short_screenshots"`
}

type taxon struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// platformEntry wraps the platform with per-platform release data we ignore.
type platformEntry struct {
	Platform taxon `json:"platform"`
}

type screenshot struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}
