package domain

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FinishInfo closes out a completion stream: why the model stopped and, when
// the provider reported it, how many tokens the exchange used.
type FinishInfo struct {
	Reason string
	Usage  *Usage
}

// StreamChunk is one element of an upstream completion stream. Exactly one
// field is set: Content for a text fragment, Finish for the terminal element,
// Err when draining the upstream failed. The producing channel closes after
// a Finish or Err chunk.
type StreamChunk struct {
	Content string
	Finish  *FinishInfo
	Err     error
}
