package llm

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// generator is the single-shot slice of *genai.Models used by Client.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// chatStarter opens chat sessions. It is implemented by chatsWrapper over *genai.Chats.
type chatStarter interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig,
		history []*genai.Content) (chatSession, error)
}

// chatSession is the slice of *genai.Chat used by Client.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	SendMessageStream(ctx context.Context, parts ...genai.Part) iter.Seq2[*genai.GenerateContentResponse, error]
}

// chatsWrapper implements chatStarter
type chatsWrapper struct {
	chats *genai.Chats
}

// Create implements chatStarter.Create
func (c *chatsWrapper) Create(ctx context.Context, model string, config *genai.GenerateContentConfig,
	history []*genai.Content) (chatSession, error) {
	chat, err := c.chats.Create(ctx, model, config, history)
	if err != nil {
		return nil, err
	}
	return chat, nil
}
