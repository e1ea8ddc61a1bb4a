package genai

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona couples a display role with the instruction that frames it.
// Pure configuration data; no behavior.
type Persona struct {
	Name        string `yaml:"name"`
	Instruction string `yaml:"instruction"`
}

// Built-in personas, keyed by the identifier callers pass in requests.
func DefaultPersonas() map[string]Persona {
	return map[string]Persona{
		"auditor": {
			Name: "Certification Auditor",
			Instruction: "You are a motorcycle protective-equipment certification auditor. " +
				"You assess whether gloves meet EN 13594 and carry a genuine CE marking. " +
				"Be precise about levels (Level 1 vs Level 2) and knuckle protection (KP).",
		},
		"analyst": {
			Name: "Label Analyst",
			Instruction: "You are a product-label analyst. You read care labels and " +
				"certification tags on motorcycle gloves from photos. Report exactly what " +
				"the label shows: standard references, pictograms, level markings.",
		},
		"detective": {
			Name: "Glove Detective",
			Instruction: "You are an investigator specialising in counterfeit and " +
				"uncertified motorcycle gear. You weigh evidence skeptically and say " +
				"plainly when the certification story does not add up.",
		},
	}
}

// LoadPersonas merges a YAML file of personas over the defaults. A missing
// path returns the defaults unchanged.
//
// File format:
//
//	auditor:
//	  name: Certification Auditor
//	  instruction: ...
func LoadPersonas(path string) (map[string]Persona, error) {
	personas := DefaultPersonas()
	if path == "" {
		return personas, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personas file: %w", err)
	}

	var overrides map[string]Persona
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse personas file: %w", err)
	}
	for key, p := range overrides {
		personas[strings.ToLower(key)] = p
	}
	return personas, nil
}

// Instruction resolves a requested persona to its instruction line. Unknown
// personas fall back to a plain role framing so free-text roles still work.
func Instruction(personas map[string]Persona, requested string) string {
	if p, ok := personas[strings.ToLower(strings.TrimSpace(requested))]; ok {
		return p.Instruction
	}
	if strings.TrimSpace(requested) == "" {
		return personas["auditor"].Instruction
	}
	return fmt.Sprintf("You are %s.", strings.TrimSpace(requested))
}
