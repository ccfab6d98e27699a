// Package release holds the minimal release record the promo composer needs:
// title, artist and cover art reference.
package release

import "time"

// CoverArt references the release artwork in upstream storage. Ref is the
// storage key; URL is a resolved, time-limited display URL and may be empty
// until resolved.
type CoverArt struct {
	Ref string `json:"ref,omitempty"`
	URL string `json:"url,omitempty"`
}

// Release is the subset of a KratoLib release consumed by promotions.
type Release struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ArtistName string    `json:"artistName"`
	CoverArt   CoverArt  `json:"coverArt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
