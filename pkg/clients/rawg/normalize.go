package rawg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"mediasearch/pkg/models"
)

var (
	errMissingCount   = errors.New("missing field `count`")
	errMissingResults = errors.New("missing field `results`")
	errMissingID      = errors.New("missing field `id`")
	errMissingName    = errors.New("missing field `name`")
)

func (l gameList) validate() error {
	if l.Count == nil {
		return errMissingCount
	}
	if l.Results == nil {
		return errMissingResults
	}
	for i, record := range *l.Results {
		if err := record.validate(); err != nil {
			return fmt.Errorf("results[%d]: %w", i, err)
		}
	}
	return nil
}

func (g gameRecord) validate() error {
	if g.ID == nil {
		return errMissingID
	}
	if g.Name == nil {
		return errMissingName
	}
	return nil
}

// normalizeGame maps one validated RAWG record onto the shared result model.
// Collections RAWG omitted stay nil; collections it sent empty stay empty.
func normalizeGame(g gameRecord) models.SearchResult {
	return models.SearchResult{
		ID:          strconv.FormatInt(*g.ID, 10),
		Title:       *g.Name,
		MediaType:   models.MediaGame,
		PosterPath:  g.BackgroundImage,
		ReleaseDate: g.Released,
		Rating:      g.Rating,
		Description: description(g),
		Slug:        g.Slug,
		Metacritic:  g.Metacritic,
		RatingTop:   g.RatingTop,
		Playtime:    g.Playtime,
		Genres:      mapTaxa(g.Genres),
		Platforms:   mapPlatforms(g.Platforms),
		ESRBRating:  mapTaxon(g.ESRBRating),
		Tags:        mapTaxa(g.Tags),
		Screenshots: mapScreenshots(g.ShortScreenshots),
	}
}

func description(g gameRecord) *string {
	if g.DescriptionRaw != nil {
		return g.DescriptionRaw
	}
	if g.Description == nil {
		return nil
	}
	text := htmlToText(*g.Description)
	return &text
}

// htmlToText flattens RAWG's HTML description. Markup that cannot be parsed
// is returned unchanged.
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Text())
}

func toTaxon(t taxon) models.Taxon {
	return models.Taxon{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

func mapTaxon(t *taxon) *models.Taxon {
	if t == nil {
		return nil
	}
	mapped := toTaxon(*t)
	return &mapped
}

func mapTaxa(in []taxon) []models.Taxon {
	if in == nil {
		return nil
	}
	return lo.Map(in, func(t taxon, _ int) models.Taxon {
		return toTaxon(t)
	})
}

func mapPlatforms(in []platformEntry) []models.Taxon {
	if in == nil {
		return nil
	}
	return lo.Map(in, func(p platformEntry, _ int) models.Taxon {
		return toTaxon(p.Platform)
	})
}

func mapScreenshots(in []screenshot) []models.Screenshot {
	if in == nil {
		return nil
	}
	return lo.Map(in, func(s screenshot, _ int) models.Screenshot {
		return models.Screenshot{ID: s.ID, ImageURL: s.Image}
	})
}
