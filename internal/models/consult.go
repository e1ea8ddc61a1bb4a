package models

// Image is an uploaded photo carried through a consultation request.
// Data arrives base64-encoded in JSON and is decoded by the JSON layer.
type Image struct {
	MimeType string `json:"mime_type"` // e.g. "image/jpeg"
	Data     []byte `json:"data"`
}

// ConsultRequest is the payload for POST /api/v1/consult.
type ConsultRequest struct {
	Persona  string  `json:"persona"`
	Question string  `json:"question"`
	Mode     string  `json:"mode"` // "fast" (default) or "deep"
	Images   []Image `json:"images,omitempty"`
}

// ConsultResponse carries the AI answer, or a human-readable diagnostic when
// every attempt failed. Failures never surface as transport errors.
type ConsultResponse struct {
	Answer   string `json:"answer"`
	Model    string `json:"model,omitempty"` // identifier that produced the answer
	Degraded bool   `json:"degraded"`        // true when Answer is a diagnostic, not an answer
}

// CouncilRequest is the payload for POST /api/v1/council.
type CouncilRequest struct {
	Brand  string  `json:"brand"`
	Model  string  `json:"model"`
	Images []Image `json:"images,omitempty"`
}

// CouncilResponse is one multi-persona reply parsed into labeled sections.
type CouncilResponse struct {
	Sections   map[string]string `json:"sections"`
	Raw        string            `json:"raw"`
	Structured bool              `json:"structured"` // false -> display Raw, sections are all sentinels
	Severity   string            `json:"severity"`   // best-effort display hint: success|warning|error
	Model      string            `json:"model,omitempty"`
	Degraded   bool              `json:"degraded"`
}
