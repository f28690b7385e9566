package models

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// Password, minimum 8 characters
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// RegisterUser holds the public part of a registered user
type RegisterUser struct {
	// Username
	// example: john_doe
	Username string `json:"username"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Registered user
	User RegisterUser `json:"user"`

	// Access token
	Access string `json:"access"`

	// Refresh token
	Refresh string `json:"refresh"`

	// Success message
	// example: User registered successfully.
	Message string `json:"message"`
}
