package auth

// SkipRequest holds the body for POST /api/authenticate/skip.
type SkipRequest struct {
	Client    string `json:"client"`
	CTZOffset string `json:"c_tz_offset"`
}

// SkipResponse is the success payload for skip login. El token emitido
// es anónimo: sin uid.
type SkipResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	AuthToken string `json:"authtoken"`
	Offset    int    `json:"offset"`
}

// CheckResponse echoes the verified claims for GET /api/check.
type CheckResponse struct {
	Status  string `json:"status"`
	Client  string `json:"client"`
	CTZ     string `json:"ctz"`
	UserID  string `json:"userId,omitempty"`
	Message string `json:"message"`
}
