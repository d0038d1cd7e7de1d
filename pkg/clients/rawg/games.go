package rawg

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mediasearch/pkg/apperr"
	"mediasearch/pkg/models"
)

const (
	dateLayout = "2006-01-02"

	newReleaseWindow = 30 * 24 * time.Hour
	upcomingWindow   = 180 * 24 * time.Hour
)

// Search runs a free-text game search.
func (c *Client) Search(ctx context.Context, query string, page uint32) (*models.SearchResponse, error) {
	params := listParams(page)
	params.Set("search", query)
	return c.listGames(ctx, "search", params, page)
}

// Popular lists games by descending rating.
func (c *Client) Popular(ctx context.Context, page uint32) (*models.SearchResponse, error) {
	params := listParams(page)
	params.Set("ordering", "-rating")
	return c.listGames(ctx, "popular", params, page)
}

// NewReleases lists games released in the 30 days up to now.
func (c *Client) NewReleases(ctx context.Context, page uint32) (*models.SearchResponse, error) {
	now := c.now()
	params := listParams(page)
	params.Set("dates", dateRange(now.Add(-newReleaseWindow), now))
	params.Set("ordering", "-added")
	return c.listGames(ctx, "new_releases", params, page)
}

// Upcoming lists games releasing within the next 180 days.
func (c *Client) Upcoming(ctx context.Context, page uint32) (*models.SearchResponse, error) {
	now := c.now()
	params := listParams(page)
	params.Set("dates", dateRange(now, now.Add(upcomingWindow)))
	params.Set("ordering", "-added")
	return c.listGames(ctx, "upcoming", params, page)
}

// Details fetches one game by RAWG id or slug.
func (c *Client) Details(ctx context.Context, id string) (*models.SearchResult, error) {
	var record gameRecord
	if err := c.getJSON(ctx, "details", "/games/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}
	if err := record.validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindExternalAPI, err, "decode rawg details response")
	}
	result := normalizeGame(record)
	return &result, nil
}

func (c *Client) listGames(ctx context.Context, operation string, params url.Values, page uint32) (*models.SearchResponse, error) {
	var list gameList
	if err := c.getJSON(ctx, operation, "/games", params, &list); err != nil {
		return nil, err
	}
	if err := list.validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindExternalAPI, err, "decode rawg %s response", operation)
	}

	results := make([]models.SearchResult, 0, len(*list.Results))
	for _, record := range *list.Results {
		results = append(results, normalizeGame(record))
	}

	total := *list.Count
	return &models.SearchResponse{
		Results:      results,
		TotalResults: total,
		TotalPages:   models.TotalPages(total, PageSize),
		CurrentPage:  page,
	}, nil
}

func listParams(page uint32) url.Values {
	params := url.Values{}
	params.Set("page", strconv.FormatUint(uint64(page), 10))
	params.Set("page_size", strconv.Itoa(PageSize))
	return params
}

func dateRange(from, to time.Time) string {
	return strings.Join([]string{from.UTC().Format(dateLayout), to.UTC().Format(dateLayout)}, ",")
}
