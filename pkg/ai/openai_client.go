package ai

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type openAI struct {
	client openai.Client
	model  string
}

// NewOpenAI returns a chat-completions client. endpoint may be empty to use
// the default API host.
func NewOpenAI(endpoint, key, model string) Client {
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if endpoint != "" {
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	return &openAI{client: openai.NewClient(opts...), model: model}
}

func (c *openAI) Complete(ctx context.Context, p Prompt) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(p.History)+2)
	if p.System != "" {
		msgs = append(msgs, openai.SystemMessage(p.System))
	}
	for _, h := range p.History {
		if h.Role == RoleModel {
			msgs = append(msgs, openai.AssistantMessage(h.Text))
		} else {
			msgs = append(msgs, openai.UserMessage(h.Text))
		}
	}
	if p.Image != nil {
		msgs = append(msgs, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(p.User),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: p.Image.DataURI()}),
		}))
	} else {
		msgs = append(msgs, openai.UserMessage(p.User))
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(0.4),
	}
	if p.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
