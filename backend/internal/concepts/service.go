// Package concepts turns raw LLM output into clean concept labels: related
// concept generation and free-text analysis.
package concepts

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/diug22/BeCreativIA/backend/internal/text"
	"github.com/diug22/BeCreativIA/backend/pkg/logger"
)

// relatedCount is how many related concepts a generation always returns,
// padding with placeholders when the model under-delivers.
const relatedCount = 3

const relatedSystemPrompt = `Genera exactamente 3 conceptos relacionados con el concepto dado.

REGLAS ESTRICTAS:
1. Solo devuelve los 3 conceptos, uno por línea
2. Sin números, viñetas, ni explicaciones
3. Solo sustantivos concretos o nombres propios
4. Una sola palabra por concepto (máximo 2 palabras si es necesario)
5. En español
6. Conceptos claros y específicos

FORMATO OBLIGATORIO:
Concepto1
Concepto2
Concepto3`

const analyzeSystemPrompt = `Analiza si el texto dado es un concepto simple o una frase/texto complejo.

REGLAS:
1. Si es un concepto simple (1-2 palabras): responde "CONCEPTO" seguido del concepto normalizado
2. Si es una frase o texto: responde "FRASE" seguido del concepto principal extraído
3. El concepto extraído debe ser 1-2 palabras máximo
4. En español
5. Formato: TIPO|concepto_extraído|explicación_breve

EJEMPLOS:
- "Tomate" → "CONCEPTO|Tomate|Es un concepto simple"
- "Me gusta la programación" → "FRASE|Programación|Extraído el concepto principal"
- "Inteligencia artificial" → "CONCEPTO|Inteligencia artificial|Concepto compuesto válido"
`

// CompletionClient is the slice of the LLM adapter this service needs
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userMsg string, maxTokens int, temperature float32) (string, error)
}

// ConceptTracker records every concept label the service produces
type ConceptTracker interface {
	TrackConcept(label string)
}

// Analysis is the outcome of classifying free text. It always carries a
// usable concept label, falling back to the first word of the input when
// the model is unavailable or malformed.
type Analysis struct {
	IsConcept        bool   `json:"is_concept"`
	ExtractedConcept string `json:"extracted_concept"`
	Explanation      string `json:"explanation"`
}

// Service generates and analyzes concepts through an LLM
type Service struct {
	llm     CompletionClient
	tracker ConceptTracker
	logger  *zap.Logger
}

// NewService creates a new concept service
func NewService(llm CompletionClient, tracker ConceptTracker) *Service {
	return &Service{
		llm:     llm,
		tracker: tracker,
		logger:  logger.Get(),
	}
}

// Related asks the model for concepts related to the given one and returns
// exactly three normalized labels. Only the first three non-empty response
// lines are considered; lines that normalize to a single rune or nothing
// are dropped and replaced by "RelacionadoN" placeholders. Every returned
// label is recorded in the tracker.
func (s *Service) Related(ctx context.Context, concept string) ([]string, error) {
	content, err := s.llm.Complete(ctx, relatedSystemPrompt, "Concepto: "+concept, 50, 0.5)
	if err != nil {
		return nil, fmt.Errorf("failed to generate related concepts: %w", err)
	}

	lines := make([]string, 0, relatedCount)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > relatedCount {
		lines = lines[:relatedCount]
	}

	related := make([]string, 0, relatedCount)
	for _, line := range lines {
		cleaned := text.Normalize(line)
		if cleaned != "" && utf8.RuneCountInString(cleaned) > 1 {
			s.tracker.TrackConcept(cleaned)
			related = append(related, cleaned)
		}
	}

	for len(related) < relatedCount {
		placeholder := fmt.Sprintf("Relacionado%d", len(related)+1)
		s.tracker.TrackConcept(placeholder)
		related = append(related, placeholder)
	}

	s.logger.Debug("Related concepts generated",
		zap.String("concept", concept),
		zap.Strings("related", related))

	return related, nil
}

// Analyze classifies free text as a simple concept or a phrase and extracts
// the main concept. It never fails: when the model errors out or answers
// off-format, the first word of the input stands in as the concept.
func (s *Service) Analyze(ctx context.Context, input string) Analysis {
	content, err := s.llm.Complete(ctx, analyzeSystemPrompt, "Analiza: "+input, 100, 0.3)
	if err != nil {
		s.logger.Warn("Concept analysis failed, using first word",
			zap.Error(err))
		return Analysis{
			IsConcept:        true,
			ExtractedConcept: firstWordConcept(input),
			Explanation:      "Error en análisis: " + err.Error(),
		}
	}

	parts := strings.Split(content, "|")
	if len(parts) < 3 {
		return Analysis{
			IsConcept:        true,
			ExtractedConcept: firstWordConcept(input),
			Explanation:      "Análisis automático aplicado",
		}
	}

	return Analysis{
		IsConcept:        strings.TrimSpace(parts[0]) == "CONCEPTO",
		ExtractedConcept: text.Normalize(strings.TrimSpace(parts[1])),
		Explanation:      strings.TrimSpace(parts[2]),
	}
}

// firstWordConcept is the degraded-mode extraction: the normalized first
// word of the input, or "Concepto" when there are no words at all.
func firstWordConcept(input string) string {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "Concepto"
	}
	return text.Normalize(fields[0])
}
