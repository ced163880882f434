package api

import "github.com/youruser/cardgen/internal/cards"

type errorResponse struct {
	Error string `json:"error"`
}

// fieldUpdate is the body of the card and attack PATCH endpoints. Value is
// the raw text of the input control.
type fieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type uploadRequest struct {
	DataURL string `json:"data_url"`
}

// renderRequest is a card plus an optional background. Fields missing from
// the body keep their default-card values.
type renderRequest struct {
	cards.Card
	ImageURL string `json:"image_url"`
}

type placeholderList struct {
	Images  []string `json:"images"`
	Count   int      `json:"count"`
	Message string   `json:"message"`
}

type placeholderUpload struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
	Filename string `json:"filename"`
}

type modelStatus struct {
	Generator string   `json:"generator"`
	Endpoint  string   `json:"endpoint,omitempty"`
	Sessions  int      `json:"sessions"`
	Types     []string `json:"types"`
	Rarities  []string `json:"rarities"`
}
