package models

// HomeActiveCase is a case the user is currently working through.
type HomeActiveCase struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ProgressPercent int    `json:"progressPercent"`
}

// HomeResolvedCase is a case the user has resolved, with the rating shown
// to them (their own rating when present, the case average otherwise).
type HomeResolvedCase struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Rating  float64 `json:"rating"`
	Reviews int64   `json:"reviews"`
}

// HomeTopRatedCase is a published case ranked by community rating.
type HomeTopRatedCase struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Rating  float64 `json:"rating"`
	Reviews int64   `json:"reviews"`
	Author  string  `json:"author"`
}

// HomeCreatedCase is a case authored by the user.
type HomeCreatedCase struct {
	ID      int64             `json:"id"`
	Title   string            `json:"title"`
	Status  PublicationStatus `json:"publicationStatus"`
	Rating  float64           `json:"rating"`
	Reviews int64             `json:"reviews"`
}

// HomeStats summarizes the user's activity across cases.
// AverageResolvedRating is nil until the user has rated a resolved case.
type HomeStats struct {
	ActiveCount           int64    `json:"activeCount"`
	ResolvedCount         int64    `json:"resolvedCount"`
	CreatedCount          int64    `json:"createdCount"`
	AverageResolvedRating *float64 `json:"averageResolvedRating"`
}

// HomeOverview aggregates everything the logged home view renders.
type HomeOverview struct {
	ActiveCases   []HomeActiveCase
	ResolvedCases []HomeResolvedCase
	TopRatedCases []HomeTopRatedCase
	CreatedCases  []HomeCreatedCase
	Stats         HomeStats
}
