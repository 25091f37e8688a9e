package models

// Intent captures what the user asked for. At least one flag is always
// true: a query that mentions neither topic implies both.
type Intent struct {
	Weather bool `json:"weather"`
	Places  bool `json:"places"`
}

// QueryRequest is the JSON body accepted by the assistant endpoint.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the assistant endpoint's success payload.
type QueryResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}
