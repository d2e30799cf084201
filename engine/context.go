package engine

import (
	"strings"

	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/memory"
)

// memoryContextLimit bounds the concatenated memory text so the assembled
// instruction stays within a sane request size.
const memoryContextLimit = 3000

// AssembleContext merges the persona's base personality with the retrieved
// memories into one grounding block. With no memories the block is the bare
// personality text; with an empty personality it is the memory section alone.
// It never fails.
func AssembleContext(persona entity.Persona, memories []memory.RetrievedMemory) string {
	var sections []string
	if personality := strings.TrimSpace(persona.Personality); personality != "" {
		sections = append(sections, personality)
	}

	if len(memories) > 0 {
		var sb strings.Builder
		sb.WriteString("Relevant memories:")
		for i, m := range memories {
			if i > 0 && sb.Len()+len(m.Content) > memoryContextLimit {
				break
			}
			sb.WriteString("\n\n")
			sb.WriteString(m.Content)
		}
		sections = append(sections, sb.String())
	}

	return strings.Join(sections, "\n\n")
}
