package handlers

import "time"

// ShortenRequest is the request body for creating a short link.
type ShortenRequest struct {
	Body struct {
		Locator string `doc:"The locator to shorten" example:"https://example.com/very/long/path" json:"locator"`
	}
}

// ShortenResponse is the response for a successfully created short link.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short link location" header:"Location"`
	}
	Body struct {
		Code      string    `doc:"The short code"     example:"Ab3xY9Qz"                            json:"code"`
		ShortURL  string    `doc:"The full short URL" example:"http://localhost:8888/Ab3xY9Qz"      json:"shortUrl"`
		Locator   string    `doc:"The canonical locator" example:"https://example.com/very/long/path" json:"locator"`
		CreatedAt time.Time `doc:"Creation time"      json:"createdAt"`
	}
}

// RedirectRequest is the request for redirecting a short link.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"Ab3xY9Qz" path:"code"`
}

// RedirectResponse redirects the caller to the original locator.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original locator" header:"Location"`
	}
}

// StatsRequest is the request for short link statistics.
type StatsRequest struct {
	Code string `doc:"The short code" example:"Ab3xY9Qz" path:"code"`
}

// StatsResponse reports a link together with its visit count.
type StatsResponse struct {
	Body struct {
		Code       string    `doc:"The short code"        json:"code"`
		Locator    string    `doc:"The canonical locator" json:"locator"`
		CreatedAt  time.Time `doc:"Creation time"         json:"createdAt"`
		VisitCount int64     `doc:"Total recorded visits" json:"visitCount"`
	}
}
