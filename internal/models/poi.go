package models

// OverpassResponse is the decoded body of an Overpass interpreter call.
type OverpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// OverpassElement is one node/way hit; only the tags matter for naming.
type OverpassElement struct {
	Tags map[string]string `json:"tags"`
}
