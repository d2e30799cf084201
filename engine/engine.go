package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/memory"
	"github.com/tymeless/legacychat/provider"
)

type (
	// Engine drives one conversation turn end to end: retrieve relevant
	// memories, assemble the grounding context, stream the persona reply
	// and synthesize follow-up questions.
	Engine struct {
		logger        *mylog.Logger
		provider      provider.Provider
		memory        *memory.Service
		questionCache *QuestionCache
		tracer        trace.Tracer
	}
)

func NewEngine(
	logger *mylog.Logger,
	prov provider.Provider,
	memoryService *memory.Service,
	questionCache *QuestionCache,
) *Engine {
	if questionCache == nil {
		questionCache = NewQuestionCache()
	}
	return &Engine{
		logger:        logger,
		provider:      prov,
		memory:        memoryService,
		questionCache: questionCache,
		tracer:        otel.Tracer("legacychat/engine"),
	}
}

// StreamReply retrieves memories relevant to userText, assembles the
// grounding context for the persona and starts a streaming generation. The
// returned stream yields reply fragments in emission order; its concatenation
// is the full persona reply. Retrieval failures degrade to an empty context
// and never block generation.
func (e *Engine) StreamReply(ctx context.Context, persona entity.Persona, userText string) (provider.Stream, error) {
	ctx, span := e.tracer.Start(ctx, "engine.StreamReply",
		trace.WithAttributes(
			attribute.String("persona.id", persona.ID),
			attribute.String("provider", e.provider.Name()),
		),
	)
	defer span.End()

	memories := e.memory.FindRelevant(ctx, persona.ID, userText, 0)
	span.SetAttributes(attribute.Int("memories.retrieved", len(memories)))

	contextBlock := AssembleContext(persona, memories)
	systemInst, err := BuildChatInstruction(persona, contextBlock)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	stream, err := e.provider.GenerateStream(ctx, systemInst, userText)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	e.logger.Debug("streaming persona reply",
		"personaId", persona.ID,
		"memories", len(memories),
		"provider", e.provider.Name(),
	)
	return stream, nil
}

// GenerateReply is the non-streaming variant of StreamReply. Used where the
// caller wants the whole reply at once, e.g. batch tooling.
func (e *Engine) GenerateReply(ctx context.Context, persona entity.Persona, userText string) (string, error) {
	stream, err := e.StreamReply(ctx, persona, userText)
	if err != nil {
		return "", err
	}
	defer stream.Close()
	return provider.Collect(stream)
}
