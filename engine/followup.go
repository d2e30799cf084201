package engine

import (
	"context"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/internal/stringutils"
)

const maxFollowUpQuestions = 5

// fallbackQuestions backs the synthesizer when parsing yields too few valid
// candidates or the generation call fails outright.
var fallbackQuestions = []string{
	"What happened next?",
	"How did that make you feel?",
	"Can you share another memory about that?",
	"What did you learn from that experience?",
	"What else do you remember about that time?",
}

var (
	questionSplitRe   = regexp.MustCompile(`\n|;|•|[-*]`)
	questionPrefixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Q\d*[:.]?\s*`),
		regexp.MustCompile(`(?i)^Question\s*\d*[:.]?\s*`),
		regexp.MustCompile(`^[-*•]\s*`),
		regexp.MustCompile(`^\d+[.)]\s*`),
	}
	genericQuestionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^tell me more`),
		regexp.MustCompile(`(?i)^what happened`),
		regexp.MustCompile(`(?i)^can you tell`),
		regexp.MustCompile(`(?i)^do you remember`),
	}
)

// QuestionsSimilar reports whether two questions are near-duplicates. Both
// are normalized first; strings under 10 characters are never similar. The
// longer string must contain the leading max(10, 0.7*len) characters of the
// shorter one. This is a containment heuristic, not semantic similarity.
func QuestionsSimilar(q1, q2 string) bool {
	n1 := stringutils.Normalize(q1)
	n2 := stringutils.Normalize(q2)

	if len(n1) < 10 || len(n2) < 10 {
		return false
	}

	shorter, longer := n1, n2
	if len(n2) < len(n1) {
		shorter, longer = n2, n1
	}

	prefixLen := max(10, int(float64(len(shorter))*0.7))
	return strings.Contains(longer, shorter[:prefixLen])
}

// parseAndValidateQuestions splits raw model output into candidate questions
// and keeps the ones that look like real, specific, unseen questions.
func parseAndValidateQuestions(questionsText string, previousQuestions []string) []string {
	candidates := questionSplitRe.Split(questionsText, -1)

	var questions []string
	for _, candidate := range candidates {
		q := strings.TrimSpace(candidate)
		for _, re := range questionPrefixRes {
			q = re.ReplaceAllString(q, "")
		}
		q = strings.TrimSpace(q)

		if len(q) < 10 || len(q) > 150 {
			continue
		}
		if !strings.HasSuffix(q, "?") {
			continue
		}
		if len(q) < 30 && lo.SomeBy(genericQuestionRes, func(re *regexp.Regexp) bool {
			return re.MatchString(q)
		}) {
			continue
		}
		if lo.SomeBy(previousQuestions, func(pq string) bool {
			return QuestionsSimilar(q, pq)
		}) {
			continue
		}

		questions = append(questions, q)
	}

	return questions
}

func filteredFallbackQuestions(previousQuestions []string) []string {
	filtered := lo.Filter(fallbackQuestions, func(q string, _ int) bool {
		return !lo.SomeBy(previousQuestions, func(pq string) bool {
			return QuestionsSimilar(q, pq)
		})
	})
	if len(filtered) > maxFollowUpQuestions {
		filtered = filtered[:maxFollowUpQuestions]
	}
	return filtered
}

// SynthesizeFollowUps derives up to five follow-up questions from the
// persona's latest reply. Identical replies are answered from the cache to
// avoid a second generation call. The method never fails: parse shortfalls
// are topped up from the fallback list and remote errors return the filtered
// fallback list directly.
func (e *Engine) SynthesizeFollowUps(
	ctx context.Context,
	persona entity.Persona,
	lastResponse string,
	history []entity.ConversationTurn,
	previousQuestions []string,
) []string {
	cacheKey := CacheKey(lastResponse)
	if len(previousQuestions) == 0 {
		if cached, ok := e.questionCache.Get(cacheKey); ok {
			return cached
		}
	}

	systemInst, err := render(followUpSystemInstTmpl, &FollowUpPromptValues{Persona: persona})
	if err != nil {
		e.logger.Warn("failed to render follow-up system instruction", mylog.Err(err))
		return filteredFallbackQuestions(previousQuestions)
	}
	userPrompt, err := render(followUpUserInstTmpl, buildFollowUpPromptValues(persona, lastResponse, history))
	if err != nil {
		e.logger.Warn("failed to render follow-up prompt", mylog.Err(err))
		return filteredFallbackQuestions(previousQuestions)
	}

	questionsText, err := e.provider.Generate(ctx, systemInst, userPrompt)
	if err != nil {
		e.logger.Warn("failed to generate follow-up questions",
			"persona", persona.Name, mylog.Err(err))
		return filteredFallbackQuestions(previousQuestions)
	}

	questions := parseAndValidateQuestions(questionsText, previousQuestions)
	if len(questions) > maxFollowUpQuestions {
		questions = questions[:maxFollowUpQuestions]
	}

	if len(questions) >= 3 && len(previousQuestions) == 0 {
		e.questionCache.Put(cacheKey, questions)
	}

	if len(questions) < 3 {
		questions = append(questions, filteredFallbackQuestions(previousQuestions)...)
		if len(questions) > maxFollowUpQuestions {
			questions = questions[:maxFollowUpQuestions]
		}
	}

	return questions
}
