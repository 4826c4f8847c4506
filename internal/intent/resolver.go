package intent

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const completionTimeout = 30 * time.Second

// jsonBlob matches the first brace-delimited region of the completion text.
// Models occasionally wrap the object in prose or code fences even with a
// JSON response format set.
var jsonBlob = regexp.MustCompile(`(?s)\{.*\}`)

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// payload is the wire shape the model is instructed to produce.
type payload struct {
	Action string `json:"action" validate:"required,oneof=list create delete update none"`
	Title  string `json:"title" validate:"required_if=Action create,required_if=Action delete"`
	Start  string `json:"start" validate:"required_if=Action create"`
	End    string `json:"end" validate:"required_if=Action create"`
	Reply  string `json:"reply"`
}

// completionAPI is the slice of the OpenAI client the resolver needs.
// Satisfied by *openai.Client.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Resolver extracts an Intent from user text via one completion call.
type Resolver struct {
	client   completionAPI
	model    string
	timezone string
	now      func() time.Time
}

func NewResolver(client completionAPI, model, timezone string) *Resolver {
	return &Resolver{
		client:   client,
		model:    model,
		timezone: timezone,
		now:      time.Now,
	}
}

// Resolve never returns an error: any failure in the completion call or in
// parsing its output collapses to NoAction with the fallback reply, so a
// malformed upstream response cannot crash the request handler.
func (r *Resolver) Resolve(ctx context.Context, text string) Intent {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt(text, r.timezone, r.now()),
			},
		},
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("Completion call failed")
		return NoAction(FallbackReply)
	}

	if len(resp.Choices) == 0 {
		log.Error().Msg("Completion returned no choices")
		return NoAction(FallbackReply)
	}

	return Parse(resp.Choices[0].Message.Content)
}

// Parse extracts and validates the action object from raw completion text.
// The schema is all-or-nothing: a named action missing a required field is
// treated identically to unparseable output.
func Parse(raw string) Intent {
	blob := jsonBlob.FindString(raw)
	if blob == "" {
		log.Warn().Str("output", raw).Msg("Completion output contains no JSON object")
		return NoAction(FallbackReply)
	}

	var p payload
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		log.Warn().Err(err).Msg("Completion output is not valid JSON")
		return NoAction(FallbackReply)
	}

	if err := validate.Struct(p); err != nil {
		log.Warn().Err(err).Str("action", p.Action).Msg("Completion output missing required fields")
		return NoAction(FallbackReply)
	}

	if Action(p.Action) == ActionNone {
		reply := p.Reply
		if reply == "" {
			reply = FallbackReply
		}
		return NoAction(reply)
	}

	return Intent{
		Action: Action(p.Action),
		Title:  p.Title,
		Start:  p.Start,
		End:    p.End,
		Reply:  p.Reply,
	}
}
