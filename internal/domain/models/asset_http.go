package models

import "encoding/json"

// AssetDataRequest is the body of POST /api/asset-data.
type AssetDataRequest struct {
	Ticker     string `json:"ticker" validate:"required"`
	AssetClass string `json:"assetClass" validate:"required"`
}

// AssetDataResponse is the body of a successful asset-data call.
// Cash responses leave FearGreed and Headline unset so both keys are omitted.
type AssetDataResponse struct {
	Ticker     string            `json:"ticker"`
	AssetClass string            `json:"assetClass"`
	FearGreed  *FearGreed        `json:"fearGreed,omitempty"`
	Metrics    any               `json:"metrics,omitempty"`
	Headline   *NullableHeadline `json:"headline,omitempty"`
}

// NullableHeadline serializes as the headline object or as null.
type NullableHeadline struct {
	Value *Headline
}

func (h NullableHeadline) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Value)
}

func (h *NullableHeadline) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &h.Value)
}

// ErrorResponse is the body of every non-2xx asset-data response.
type ErrorResponse struct {
	Error string `json:"error"`
}
