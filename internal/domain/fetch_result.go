package domain

import "encoding/json"

// FetchResult is the body of the posts API response.
type FetchResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    []Post `json:"data"`
}

// MarshalJSON always emits data as an array, never null.
func (r FetchResult) MarshalJSON() ([]byte, error) {
	type alias FetchResult
	if r.Data == nil {
		r.Data = []Post{}
	}
	return json.Marshal(alias(r))
}
