package models

const (
	EnvelopeVersion = "1.0"

	SpeechTypePlainText = "PlainText"
	CardTypeSimple      = "Simple"
)

// ResponseEnvelope is the JSON body returned to the platform.
type ResponseEnvelope struct {
	Version           string                 `json:"version"`
	SessionAttributes map[string]interface{} `json:"sessionAttributes"`
	Response          *Response              `json:"response"`
}

// Response is immutable once built; use ResponseBuilder to create one.
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *Response) SpeechText() string {
	if r == nil || r.OutputSpeech == nil {
		return ""
	}
	return r.OutputSpeech.Text
}

// RepromptText returns the reprompt and whether the session stays open.
func (r *Response) RepromptText() (string, bool) {
	if r == nil || r.Reprompt == nil {
		return "", false
	}
	return r.Reprompt.OutputSpeech.Text, true
}

func (r *Response) CardTitle() string {
	if r == nil || r.Card == nil {
		return ""
	}
	return r.Card.Title
}

func (r *Response) CardContent() string {
	if r == nil || r.Card == nil {
		return ""
	}
	return r.Card.Content
}

// EndsSession reports the session flag; an absent flag leaves the session to
// the platform's default.
func (r *Response) EndsSession() (bool, bool) {
	if r == nil || r.ShouldEndSession == nil {
		return false, false
	}
	return *r.ShouldEndSession, true
}

// ResponseBuilder assembles a Response. The zero value is ready to use.
type ResponseBuilder struct {
	speech   string
	reprompt string
	card     *Card
	hasSpeak bool
	hasAsk   bool
}

func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

func (b *ResponseBuilder) Speak(text string) *ResponseBuilder {
	b.speech = text
	b.hasSpeak = true
	return b
}

// Reprompt keeps the session open and sets the follow-up prompt.
func (b *ResponseBuilder) Reprompt(text string) *ResponseBuilder {
	b.reprompt = text
	b.hasAsk = true
	return b
}

func (b *ResponseBuilder) SimpleCard(title, content string) *ResponseBuilder {
	b.card = &Card{Type: CardTypeSimple, Title: title, Content: content}
	return b
}

// Build returns the response. The session ends exactly when no reprompt was
// set. A builder with neither speech nor reprompt produces an empty response
// without a session flag, as required for SessionEndedRequest.
func (b *ResponseBuilder) Build() *Response {
	resp := &Response{}
	if b.hasSpeak {
		resp.OutputSpeech = &OutputSpeech{Type: SpeechTypePlainText, Text: b.speech}
	}
	if b.hasAsk {
		resp.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{Type: SpeechTypePlainText, Text: b.reprompt}}
	}
	if b.card != nil {
		card := *b.card
		resp.Card = &card
	}
	if b.hasSpeak || b.hasAsk || b.card != nil {
		end := !b.hasAsk
		resp.ShouldEndSession = &end
	}
	return resp
}

// Wrap places a response in the envelope the platform expects.
func Wrap(req *RequestEnvelope, resp *Response) *ResponseEnvelope {
	if resp == nil {
		resp = &Response{}
	}
	attrs := map[string]interface{}{}
	if req != nil {
		attrs = req.SessionAttributes()
	}
	return &ResponseEnvelope{
		Version:           EnvelopeVersion,
		SessionAttributes: attrs,
		Response:          resp,
	}
}
