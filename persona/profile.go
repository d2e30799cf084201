package persona

import (
	"context"
	"log/slog"
	"strings"
	"text/template"

	"github.com/tymeless/legacychat/provider"
)

const profilePromptTemplate = `I am creating a digital legacy persona for my {{.Relation}}, named {{.Name}}.
Here are some raw notes and memories about them: "{{.Memories}}".

Please generate a cohesive "Personality System Instruction" block (approx 100 words) that captures their voice, mannerisms, and key life events.
Do not include "Here is the profile" text, just the profile description itself suitable for an AI prompt.`

const (
	defaultProfile       = "A loving family member who cherishes memories."
	profileErrorFallback = "A gentle soul who loves their family."
)

var profileTmpl = template.Must(template.New("profile").Parse(profilePromptTemplate))

// GenerateProfile turns raw wizard notes into a personality system
// instruction. It never fails: an empty or errored generation yields a fixed
// fallback description.
func GenerateProfile(ctx context.Context, p provider.Provider, logger *slog.Logger, name, relation, memories string) string {
	var prompt strings.Builder
	if err := profileTmpl.Execute(&prompt, struct {
		Name     string
		Relation string
		Memories string
	}{Name: name, Relation: relation, Memories: memories}); err != nil {
		logger.Error("failed to render profile prompt", slog.Any("error", err))
		return profileErrorFallback
	}

	profile, err := p.Generate(ctx, "", prompt.String())
	if err != nil {
		logger.Error("failed to generate personality profile", slog.Any("error", err))
		return profileErrorFallback
	}
	if strings.TrimSpace(profile) == "" {
		return defaultProfile
	}
	return profile
}
