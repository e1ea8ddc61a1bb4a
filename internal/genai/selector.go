package genai

import (
	"errors"
	"regexp"
	"strings"
)

// Mode selects the capability/latency trade-off for a consultation.
type Mode string

const (
	ModeFast Mode = "fast"
	ModeDeep Mode = "deep"
)

// ParseMode normalises a request string; anything unrecognised is fast.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeDeep)) {
		return ModeDeep
	}
	return ModeFast
}

// modePreferences orders capability keywords per mode. First keyword with any
// matching identifier wins; identifiers are compared case-insensitively.
var modePreferences = map[Mode][]string{
	ModeFast: {"flash", "lite"},
	ModeDeep: {"pro", "thinking", "flash"},
}

// versionMarker: a digit following a dash, e.g. "gemini-1.5-pro". Models named
// this way are the multimodal generations.
var versionMarker = regexp.MustCompile(`-\d`)

// ErrNoModels is returned when the credential can reach no generative model.
var ErrNoModels = errors.New("no generative models available")

// SelectModel picks the first available identifier containing a keyword
// preferred for the mode, falling back to the first identifier when no
// keyword matches. Deterministic for a fixed list and mode.
func SelectModel(available []string, mode Mode) (string, error) {
	if len(available) == 0 {
		return "", ErrNoModels
	}
	for _, kw := range modePreferences[mode] {
		for _, name := range available {
			if strings.Contains(strings.ToLower(name), kw) {
				return name, nil
			}
		}
	}
	return available[0], nil
}

// Multimodal reports whether a model identifier advertises image support:
// either an explicit "vision" marker or a versioned-generation name.
func Multimodal(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "vision") || versionMarker.MatchString(lower)
}

// SelectVisionModel narrows the candidates to multimodal identifiers before
// applying the mode preference, so images are never sent to a text-only
// model. Identifiers naming "vision" explicitly win over everything else.
func SelectVisionModel(available []string, mode Mode) (string, error) {
	var capable []string
	for _, name := range available {
		if Multimodal(name) {
			capable = append(capable, name)
		}
	}
	if len(capable) == 0 {
		return "", errors.New("no vision-capable model available")
	}
	for _, name := range capable {
		if strings.Contains(strings.ToLower(name), "vision") {
			return name, nil
		}
	}
	return SelectModel(capable, mode)
}
