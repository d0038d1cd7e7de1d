package models

import (
	"fmt"
	"strings"
)

// MediaType is the kind of media a search targets.
type MediaType int

const (
	MediaAnime MediaType = iota + 1
	MediaManga
	MediaMovie
	MediaTVShow
	MediaGame
)

var mediaTypeNames = map[MediaType]string{
	MediaAnime:  "anime",
	MediaManga:  "manga",
	MediaMovie:  "movie",
	MediaTVShow: "tvshow",
	MediaGame:   "game",
}

// AllMediaTypes lists every media type in declaration order.
func AllMediaTypes() []MediaType {
	return []MediaType{MediaAnime, MediaManga, MediaMovie, MediaTVShow, MediaGame}
}

func (m MediaType) String() string {
	if name, ok := mediaTypeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MediaType(%d)", int(m))
}

// ParseMediaType accepts the lowercase wire name of a media type.
func ParseMediaType(s string) (MediaType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for mt, name := range mediaTypeNames {
		if name == needle {
			return mt, nil
		}
	}
	return 0, fmt.Errorf("unknown media type %q", s)
}

func (m MediaType) MarshalText() ([]byte, error) {
	name, ok := mediaTypeNames[m]
	if !ok {
		return nil, fmt.Errorf("invalid media type %d", int(m))
	}
	return []byte(name), nil
}

func (m *MediaType) UnmarshalText(text []byte) error {
	parsed, err := ParseMediaType(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SearchResponse is one page of normalized results.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	TotalResults uint32         `json:"total_results"`
	TotalPages   uint32         `json:"total_pages"`
	CurrentPage  uint32         `json:"current_page"`
}

// SearchResult is a provider-independent media record. Pointer and slice fields are
// nil when the provider did not supply them and serialize as null.
type SearchResult struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	MediaType   MediaType `json:"media_type"`
	PosterPath  *string   `json:"poster_path"`
	ReleaseDate *string   `json:"release_date"`
	Rating      *float64  `json:"rating"`
	Description *string   `json:"description"`

	Slug        *string      `json:"slug"`
	Metacritic  *int         `json:"metacritic"`
	RatingTop   *int         `json:"rating_top"`
	Playtime    *int         `json:"playtime"`
	Genres      []Taxon      `json:"genres"`
	Platforms   []Taxon      `json:"platforms"`
	ESRBRating  *Taxon       `json:"esrb_rating"`
	Tags        []Taxon      `json:"tags"`
	Screenshots []Screenshot `json:"screenshots"`
}

// Taxon is a named classification entry such as a genre, platform, tag or age rating.
type Taxon struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Screenshot struct {
	ID       int    `json:"id"`
	ImageURL string `json:"image_url"`
}

// TotalPages returns ceil(total/pageSize) without overflowing uint32 arithmetic.
func TotalPages(total, pageSize uint32) uint32 {
	if pageSize == 0 {
		return 0
	}
	return uint32((uint64(total) + uint64(pageSize) - 1) / uint64(pageSize))
}
