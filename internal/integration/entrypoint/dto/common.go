// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/shopspring/decimal"

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
