package gemini

// Wire types for the generateContent REST call. Only the fields the client
// reads are declared; everything else in the response is ignored.

// GeminiContent is a single conversation turn.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is one piece of a turn's content.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// GeminiCandidate is one alternative generation; only the first is used.
type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

// GeminiResponse is the success response body.
type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// geminiErrorResponse is the error body shape returned on non-2xx statuses.
type geminiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
