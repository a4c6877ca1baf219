package screening

import (
	_ "embed"
	"strings"

	"resume-screener/internal/shared/config"
)

var (
	//go:embed prompts/screening.txt
	promptScreening string
	//go:embed prompts/proficiency.txt
	promptProficiency string
)

// Mode selects one of the two prompt/parse protocols. They are not
// interchangeable: the prompt shape, decoding parameters, and parser must
// match, so a deployment configures exactly one.
type Mode string

const (
	// ModeScreening asks for a 4-key record with a Yes/No skill-match flag.
	ModeScreening Mode = config.ModeScreening
	// ModeProficiency asks for one "Skill: Level" line per target skill.
	ModeProficiency Mode = config.ModeProficiency
)

// ModeFromString maps a configured mode name onto a Mode, defaulting to
// screening.
func ModeFromString(raw string) Mode {
	if Mode(raw) == ModeProficiency {
		return ModeProficiency
	}
	return ModeScreening
}

// Prompt builds the instruction for one document, embedding its text verbatim.
// No length validation: oversized documents rely on the endpoint's token limit.
func (m Mode) Prompt(resumeText string) string {
	template := promptScreening
	if m == ModeProficiency {
		template = promptProficiency
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

// MaxTokens returns the fixed output token budget for the mode.
func (m Mode) MaxTokens() int {
	if m == ModeProficiency {
		return 200
	}
	return 1000
}

// Temperature returns the decoding temperature override, or nil for the
// endpoint default. Proficiency mode pins deterministic decoding.
func (m Mode) Temperature() *float32 {
	if m == ModeProficiency {
		zero := float32(0)
		return &zero
	}
	return nil
}
