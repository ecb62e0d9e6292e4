package domain

import "context"

// Service is a card of the services grid
type Service struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Stats       []string `json:"stats"`
	Color       string   `json:"color"`
}

// ShowcaseStat is a labelled figure shown under a showcase item
type ShowcaseStat struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ShowcaseItem is a card of the technology showcase
type ShowcaseItem struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Stats       []ShowcaseStat `json:"stats"`
	Color       string         `json:"color"`
	Shape       string         `json:"shape"` // Torus, Icosahedron or Octahedron
}

// ContactChannel is one of the ways to reach the team listed beside the form
type ContactChannel struct {
	Kind        string `json:"kind"` // email, chat, phone
	Title       string `json:"title"`
	Description string `json:"description"`
	Label       string `json:"label,omitempty"`
	Href        string `json:"href,omitempty"`
}

type ContentUsecase interface {
	ListServices(ctx context.Context) []Service
	ListShowcase(ctx context.Context) []ShowcaseItem
	ListContactChannels(ctx context.Context) []ContactChannel
}
