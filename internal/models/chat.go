package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is returned for every outcome; callers branch on the status code.
type ChatReply struct {
	Reply string `json:"reply"`
}
