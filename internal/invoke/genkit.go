package invoke

import (
	"context"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/planora/planora/internal/log"
	"github.com/planora/planora/internal/session"
)

// GenkitBackend generates text through a Genkit instance. Responses are
// consumed as a stream and accumulated; the final response text is preferred
// when the provider supplies one.
type GenkitBackend struct {
	g      *genkit.Genkit
	logger log.Logger
}

// NewGenkitBackend wraps an initialized Genkit instance.
func NewGenkitBackend(g *genkit.Genkit, logger log.Logger) *GenkitBackend {
	if logger == nil {
		logger = log.NewNop()
	}
	return &GenkitBackend{g: g, logger: logger}
}

// Generate implements Backend.
func (b *GenkitBackend) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]*ai.Message, 0, len(req.History))
	for _, turn := range req.History {
		switch turn.Role {
		case session.RoleAssistant:
			messages = append(messages, ai.NewModelMessage(ai.NewTextPart(turn.Text)))
		default:
			messages = append(messages, ai.NewUserMessage(ai.NewTextPart(turn.Text)))
		}
	}

	var streamed strings.Builder
	resp, err := genkit.Generate(ctx, b.g,
		ai.WithModelName(req.Model),
		ai.WithSystem(req.System),
		ai.WithMessages(messages...),
		ai.WithStreaming(func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
			streamed.WriteString(chunk.Text())
			return nil
		}),
	)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		// Some providers only deliver content through the stream callback.
		text = streamed.String()
	}
	b.logger.Debug("generation complete", "model", req.Model, "chars", len(text))
	return text, nil
}
