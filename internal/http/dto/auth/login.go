package auth

// LoginRequest holds the body for POST /api/authenticate.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Client identifica la app que pide el token (android|mocha).
	Client string `json:"client"`
	// CTZOffset es el offset del cliente en minutos, como lo reporta
	// el dispositivo (signo invertido respecto de UTC).
	CTZOffset string `json:"c_tz_offset"`
	// Token puede venir en el body para rutas protegidas.
	Token string `json:"token,omitempty"`
}

// LoginResponse is the success payload for password login.
type LoginResponse struct {
	Status      string `json:"status"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	UserID      string `json:"userId"`
	DigitsID    *int64 `json:"digitsId,omitempty"`
	Message     string `json:"message"`
	AuthToken   string `json:"authtoken"`
	// Offset es el offset del servidor en minutos (convención del
	// cliente: signo invertido).
	Offset int `json:"offset"`
}

// LoginResult is the internal result from the login service.
type LoginResult struct {
	UserID      string
	PhoneNumber string
	DigitsID    *int64
	Token       string
}
