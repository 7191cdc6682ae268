package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all short link routes.
func RegisterRoutes(api huma.API, linkHandler *LinkHandler) {
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short link",
		Description:   "Validates and normalizes the locator, then returns its short link. Shortening the same locator twice returns the same code.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, linkHandler.CreateShortLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{code}/stats",
		Summary:     "Get link statistics",
		Description: "Returns the link record and its total visit count.",
		Tags:        []string{"Links"},
	}, linkHandler.GetLinkStats)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original locator",
		Description: "Records a visit, then redirects to the locator associated with the short code.",
		Tags:        []string{"Links"},
	}, linkHandler.RedirectToLink)
}
