package narrative

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/nbenitez/fuegos/internal/models"
)

// Generator drafts the short Spanish summary paragraph that accompanies the
// published table. Entirely optional: without an API key the pipeline runs
// without it.
type Generator struct {
	client openai.Client
	model  openai.ChatModel
}

// NewGenerator reads OPENAI_API_KEY from the environment.
func NewGenerator() (*Generator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	return &Generator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModel("gpt-4o-mini"),
	}, nil
}

const systemPrompt = "Eres un redactor de datos. Escribe en español, tono " +
	"sobrio y periodístico, sin adjetivos dramáticos. Dos o tres frases, " +
	"solo hechos presentes en los datos."

// Summarize produces a two-to-three sentence season summary from the
// aggregate table.
func (g *Generator) Summarize(ctx context.Context, year int, rows []models.AggregateRow) (string, error) {
	if len(rows) == 0 {
		return "", errors.New("no aggregate rows to summarize")
	}

	var total float64
	var fires int
	for _, r := range rows {
		total += r.AreaHa
		fires += r.Count
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Incendios forestales en España, año %d (solo fuegos de 30 ha o más).\n", year)
	fmt.Fprintf(&b, "Total: %.0f ha en %d incendios.\n", total, fires)
	b.WriteString("Por comunidad autónoma:\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "- %s: %.0f ha (%.1f%%), %d incendios\n", r.Key, r.AreaHa, r.Pct, r.Count)
	}
	b.WriteString("Redacta un resumen breve de la temporada con estos datos.")

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(b.String()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
