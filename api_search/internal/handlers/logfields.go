package handlers

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"mediasearch/pkg/apperr"
	"mediasearch/pkg/logging"
	"mediasearch/pkg/middleware"
)

// ErrInvalidBody is returned for bodies that are not the expected JSON object.
// The decoder's own message stays in the logs.
var ErrInvalidBody = apperr.BadRequest("invalid request body")

const maxLoggedQueryRunes = 64

// loggableQuery shortens free-text queries and strips control characters
// before they reach the logs.
func loggableQuery(query string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, strings.TrimSpace(query))

	runes := []rune(cleaned)
	if len(runes) <= maxLoggedQueryRunes {
		return cleaned
	}
	return string(runes[:maxLoggedQueryRunes]) + "…"
}

func logBindError(c *gin.Context, logger logging.Logger, err error) {
	middleware.GetContextLogger(c, logger).WithError(err).Debug("Rejected request body")
}
