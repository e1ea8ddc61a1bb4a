package models

// Guess is one brand/model identification produced by the AI from photos,
// or typed in by the user via the edit action.
type Guess struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Notes string `json:"notes,omitempty"`
}

// LensEditRequest is the payload for POST /api/v1/lens/:id/edit.
type LensEditRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// LensBeginRequest is the payload for POST /api/v1/lens.
type LensBeginRequest struct {
	Images []Image `json:"images"`
}
