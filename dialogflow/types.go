// Package dialogflow models the fulfillment webhook envelope: the ES
// request/response shapes, the CX variant that nests parameters under
// sessionInfo, and ordered-alias lookup over the parameter bag.
package dialogflow

// Intent identifies the matched intent
type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// QueryResult carries the classification result for one user query
type QueryResult struct {
	QueryText                 string  `json:"queryText"`
	Parameters                Params  `json:"parameters"`
	Intent                    Intent  `json:"intent"`
	IntentDetectionConfidence float64 `json:"intentDetectionConfidence"`
	LanguageCode              string  `json:"languageCode"`
}

// FulfillmentInfo is the CX-shaped intent tag
type FulfillmentInfo struct {
	Tag string `json:"tag"`
}

// SessionInfo is the CX-shaped parameter container
type SessionInfo struct {
	Parameters Params `json:"parameters"`
}

// WebhookRequest is the inbound fulfillment payload. ES requests
// populate QueryResult; the CX variant populates FulfillmentInfo and
// SessionInfo instead.
type WebhookRequest struct {
	ResponseID      string           `json:"responseId"`
	Session         string           `json:"session"`
	QueryResult     *QueryResult     `json:"queryResult"`
	FulfillmentInfo *FulfillmentInfo `json:"fulfillmentInfo"`
	SessionInfo     *SessionInfo     `json:"sessionInfo"`
}

// IntentName returns the platform-supplied intent name, preferring the
// ES display name over the CX tag. Empty when neither shape is present.
func (r *WebhookRequest) IntentName() string {
	if r.QueryResult != nil && r.QueryResult.Intent.DisplayName != "" {
		return r.QueryResult.Intent.DisplayName
	}
	if r.FulfillmentInfo != nil {
		return r.FulfillmentInfo.Tag
	}
	return ""
}

// Params returns the parameter bag from whichever payload shape
// carries it. Never nil.
func (r *WebhookRequest) Params() Params {
	if r.QueryResult != nil && r.QueryResult.Parameters != nil {
		return r.QueryResult.Parameters
	}
	if r.SessionInfo != nil && r.SessionInfo.Parameters != nil {
		return r.SessionInfo.Parameters
	}
	return Params{}
}

// Text is a list of reply strings
type Text struct {
	Text []string `json:"text"`
}

// Message wraps one fulfillment message
type Message struct {
	Text *Text `json:"text,omitempty"`
}

// WebhookResponse is the outbound reply envelope
type WebhookResponse struct {
	FulfillmentText     string    `json:"fulfillmentText,omitempty"`
	FulfillmentMessages []Message `json:"fulfillmentMessages,omitempty"`
}

// NewTextResponse builds a reply envelope carrying a single text reply
func NewTextResponse(reply string) *WebhookResponse {
	return &WebhookResponse{
		FulfillmentText: reply,
		FulfillmentMessages: []Message{
			{Text: &Text{Text: []string{reply}}},
		},
	}
}
