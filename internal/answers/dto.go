package answers

// AskRequest is the body of POST /answer.
type AskRequest struct {
	Query string `json:"query"`
}
