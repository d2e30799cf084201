package engine

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/internal/sliceutils"
)

var (
	//go:embed data/instructions/chat.md.tmpl
	chatInst     string
	chatInstTmpl = template.Must(template.New("chat").Funcs(funcMap()).Parse(chatInst))

	//go:embed data/instructions/followup_system.md.tmpl
	followUpSystemInst     string
	followUpSystemInstTmpl = template.Must(template.New("followup_system").Funcs(funcMap()).Parse(followUpSystemInst))

	//go:embed data/instructions/followup_user.md.tmpl
	followUpUserInst     string
	followUpUserInstTmpl = template.Must(template.New("followup_user").Funcs(funcMap()).Parse(followUpUserInst))
)

func funcMap() template.FuncMap {
	return sprig.FuncMap()
}

type (
	// ChatPromptValues feeds the chat instruction template. Context is the
	// grounding block produced by AssembleContext.
	ChatPromptValues struct {
		Persona entity.Persona
		Context string
	}

	// HistoryLine is one recent conversation entry rendered into the
	// follow-up prompt. Speaker is already resolved to a display name.
	HistoryLine struct {
		Speaker string
		Text    string
	}

	FollowUpPromptValues struct {
		Persona      entity.Persona
		LastResponse string
		History      []HistoryLine
	}
)

func render(tmpl *template.Template, values any) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", errors.Wrapf(err, "failed to execute %s template", tmpl.Name())
	}
	return buf.String(), nil
}

// BuildChatInstruction renders the system instruction for a persona reply.
func BuildChatInstruction(persona entity.Persona, contextBlock string) (string, error) {
	return render(chatInstTmpl, &ChatPromptValues{
		Persona: persona,
		Context: contextBlock,
	})
}

// buildFollowUpPromptValues keeps only the most recent entries of the
// conversation and drops the history block entirely when the exchange is
// still too short to add useful context.
func buildFollowUpPromptValues(persona entity.Persona, lastResponse string, history []entity.ConversationTurn) *FollowUpPromptValues {
	values := &FollowUpPromptValues{
		Persona:      persona,
		LastResponse: lastResponse,
	}

	recent := sliceutils.Tail(history, 6)
	if len(recent) > 2 {
		for _, turn := range recent {
			speaker := persona.Name
			if turn.Role == entity.RoleUser {
				speaker = "Visitor"
			}
			values.History = append(values.History, HistoryLine{
				Speaker: speaker,
				Text:    turn.Text,
			})
		}
	}

	return values
}
