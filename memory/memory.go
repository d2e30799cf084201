package memory

import (
	"github.com/mitchellh/mapstructure"
	"github.com/tymeless/legacychat/errors"
)

type (
	// Memory is one discrete biographical snippet belonging to a persona.
	// Memories are created by ingestion and read-only for the chat
	// pipeline.
	Memory struct {
		ID        string   `json:"id"`
		PersonaID string   `json:"personaId"`
		Content   string   `json:"content"`
		Metadata  Metadata `json:"metadata,omitempty"`

		Embedding []float32 `json:"-"`
	}

	// Metadata carries optional categorization for a memory.
	Metadata struct {
		Category string   `json:"category,omitempty" mapstructure:"category"`
		Period   string   `json:"period,omitempty" mapstructure:"period"`
		Topic    string   `json:"topic,omitempty" mapstructure:"topic"`
		Tags     []string `json:"tags,omitempty" mapstructure:"tags"`
	}

	// SearchResult holds a memory with its similarity score.
	SearchResult struct {
		Memory *Memory `json:"memory"`
		Score  float32 `json:"score"`
	}

	// RetrievedMemory is the transient retrieval unit handed to context
	// assembly, ranked descending by similarity.
	RetrievedMemory struct {
		Content string  `json:"content"`
		Score   float32 `json:"score"`
	}
)

// MetadataFromMap decodes a raw metadata map, tolerating unknown keys.
func MetadataFromMap(m map[string]any) (Metadata, error) {
	var metadata Metadata
	if m == nil {
		return metadata, nil
	}
	if err := mapstructure.Decode(m, &metadata); err != nil {
		return metadata, errors.Wrapf(err, "failed to decode memory metadata")
	}
	return metadata, nil
}

// Map converts metadata to the raw form stored in JSON columns.
func (m Metadata) Map() map[string]any {
	out := map[string]any{}
	if m.Category != "" {
		out["category"] = m.Category
	}
	if m.Period != "" {
		out["period"] = m.Period
	}
	if m.Topic != "" {
		out["topic"] = m.Topic
	}
	if len(m.Tags) > 0 {
		out["tags"] = m.Tags
	}
	return out
}
