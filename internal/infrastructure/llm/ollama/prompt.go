package ollama

import (
	"fmt"
	"strings"

	"github.com/dkrasnov/workdesk/internal/core/domain"
)

func buildGroundedPrompt(question string, chunks []domain.RetrievedChunk) string {
	var contextBuilder strings.Builder
	for idx, chunk := range chunks {
		contextBuilder.WriteString(fmt.Sprintf(
			"[%d] file=%s score=%.3f\n%s\n\n",
			idx+1,
			chunk.Filename,
			chunk.Score,
			chunk.Text,
		))
	}

	return fmt.Sprintf(`Answer the question using only the context below.
If the context does not contain the answer, say "I don't have information about that."

Context:
%s
Question:
%s
`, contextBuilder.String(), question)
}

func buildFallbackPrompt(question string) string {
	return fmt.Sprintf(`You are a helpful assistant. Answer the following question from your general knowledge.
Provide a helpful and accurate response.

Question:
%s
`, question)
}

func buildClassificationPrompt(text string) string {
	const maxSnippet = 4000
	snippet := text
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}

	return `You are a document classifier.
Return a strict JSON object with keys:
category (string), tags (array of strings), summary (string).
No markdown, no extra keys.

Document:
` + snippet
}
