package enricher

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/caption-rag/internal/retry"
	"google.golang.org/genai"
)

const ragPrompt = `Sua missão é adaptar esta transcrição de vídeo para ser uma fonte RAG (Retrieval-Augmented Generation) de alta qualidade.

ESTRUTURA REQUERIDA (Markdown):

1. # Fonte RAG: %[1]s

2. ## Metadados do Documento
- **ID:** [Crie um ID curto, ex: LIVE-00X]
- **Data da Transcrição:** %[2]s
- **Data do Evento:** %[3]s
- **Assunto Principal:** [2-3 temas centrais]
- **Público-Alvo:** Líderes, Ekklezia, Mesa do Conselho.
- **Terminologia Chave:** [5-7 palavras-chave separadas por vírgula]

3. ## Seções Temáticas
Divida o texto em seções lógicas usando:
### [Título da Seção]
**Tags:** #[Tag1] #[Tag2]
[Conteúdo estruturado, limpo de vícios de linguagem, focado em princípios e estratégias]

REGRAS CRÍTICAS:
- Mantenha o conteúdo profundo (não resuma demais).
- Remova redundâncias de fala (saudações repetitivas, ruídos).
- Use Markdown rigoroso.
- Mantenha os termos "Sete Montes" e "Ekklezia" sempre que o conteúdo se referir a governo ou igreja.

ARQUIVO ORIGINAL: %[4]s
CONTEÚDO:
%[5]s
`

func buildPrompt(req Request) string {
	return fmt.Sprintf(ragPrompt, req.Title, req.CurrentDate, req.EventDate, req.Filename, req.Text)
}

// Enrich sends a single request with the current key. Rate-limit failures
// rotate the key and come back marked retry.Transient.
func (g *implGemini) Enrich(ctx context.Context, req Request) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	generate, key := g.current()
	result, err := generate(ctx, g.model, genai.Text(buildPrompt(req)), nil)
	if err != nil {
		if retry.IsTransient(err) {
			if len(g.generators) > 1 {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", key+1)
			}
			g.rotateFrom(key)
			return "", retry.Transient(fmt.Errorf("generate content: %w", err))
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := extractText(result)
	if text == "" {
		g.logger.Warn(ctx, "Empty response from Gemini for %s", req.Filename)
	}
	return text, nil
}

func (g *implGemini) current() (generateFunc, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generators[g.currentKey], g.currentKey
}

// rotateFrom advances past key unless another worker already did.
func (g *implGemini) rotateFrom(key int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == key {
		g.currentKey = (g.currentKey + 1) % len(g.generators)
	}
}

func extractText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
