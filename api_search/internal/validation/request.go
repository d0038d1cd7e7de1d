// Package validation checks inbound search requests before any provider call.
package validation

import (
	"strconv"
	"strings"

	"mediasearch/pkg/apperr"
	"mediasearch/pkg/models"
)

const DefaultPage uint32 = 1

var (
	ErrQueryRequired    = apperr.BadRequest("query is required")
	ErrInvalidPage      = apperr.BadRequest("page must be a positive integer")
	ErrMediaTypeMissing = apperr.BadRequest("media_type is required")
)

// GameSearchRequest is the body of POST /api/v1/game/search.
type GameSearchRequest struct {
	Query string  `json:"query"`
	Page  *uint32 `json:"page"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query     string  `json:"query"`
	MediaType string  `json:"media_type"`
	Page      *uint32 `json:"page"`
}

// Search holds a validated search.
type Search struct {
	Query     string
	MediaType models.MediaType
	Page      uint32
}

// Validate returns the trimmed query and the effective page.
func (r GameSearchRequest) Validate() (Search, error) {
	query, err := validateQuery(r.Query)
	if err != nil {
		return Search{}, err
	}
	page, err := pageOrDefault(r.Page)
	if err != nil {
		return Search{}, err
	}
	return Search{Query: query, MediaType: models.MediaGame, Page: page}, nil
}

func (r SearchRequest) Validate() (Search, error) {
	query, err := validateQuery(r.Query)
	if err != nil {
		return Search{}, err
	}
	if strings.TrimSpace(r.MediaType) == "" {
		return Search{}, ErrMediaTypeMissing
	}
	mt, err := models.ParseMediaType(r.MediaType)
	if err != nil {
		return Search{}, apperr.BadRequest("unknown media_type: " + r.MediaType)
	}
	page, err := pageOrDefault(r.Page)
	if err != nil {
		return Search{}, err
	}
	return Search{Query: query, MediaType: mt, Page: page}, nil
}

// ParsePage reads a page from a query-string value. An empty value means the
// first page; zero and anything that is not an unsigned 32-bit integer are rejected.
func ParsePage(raw string) (uint32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPage, nil
	}
	page, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || page == 0 {
		return 0, ErrInvalidPage
	}
	return uint32(page), nil
}

// ValidateID rejects blank catalog ids.
func ValidateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperr.BadRequest("id is required")
	}
	return id, nil
}

func validateQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrQueryRequired
	}
	return query, nil
}

func pageOrDefault(page *uint32) (uint32, error) {
	if page == nil {
		return DefaultPage, nil
	}
	if *page == 0 {
		return 0, ErrInvalidPage
	}
	return *page, nil
}
