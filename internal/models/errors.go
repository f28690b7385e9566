package models

// ErrorResponse represents a generic error body
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Monthly request limit reached
	Error string `json:"error"`
}

// CurrencyCodeErrorResponse represents a validation error attached to the currency_code field
// swagger:model CurrencyCodeErrorResponse
type CurrencyCodeErrorResponse struct {
	// Validation message
	// example: currency code is required
	CurrencyCode string `json:"currency_code"`
}

// PasswordErrorResponse represents a validation error attached to the password field
// swagger:model PasswordErrorResponse
type PasswordErrorResponse struct {
	// Validation message
	// example: password must be at least 8 characters
	Password string `json:"password"`
}

// DetailErrorResponse represents a permission error body
// swagger:model DetailErrorResponse
type DetailErrorResponse struct {
	// Error detail
	// example: Not enough money
	Detail string `json:"detail"`
}
