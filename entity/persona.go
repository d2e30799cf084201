package entity

// Persona is the identity unit being simulated. Personas are created by an
// external workflow (or pre-seeded) and are immutable for the lifetime of a
// conversation.
type Persona struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Relation string `json:"relation,omitempty" yaml:"relation,omitempty"`
	Age      string `json:"age,omitempty" yaml:"age,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Bio      string `json:"bio,omitempty" yaml:"bio,omitempty"`

	// Personality is the base system description and the only required
	// grounding text. Generation still proceeds when it is empty.
	Personality string `json:"personality" yaml:"personality"`

	// SampleQuestions seed the conversation before any history exists and
	// double as the fallback follow-up set.
	SampleQuestions []string `json:"sampleQuestions,omitempty" yaml:"sampleQuestions,omitempty"`
}
