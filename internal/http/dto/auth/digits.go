package auth

// DigitsRequest holds the body for POST /api/authenticate/digits. Las
// credenciales viajan en headers; el body sólo trae client y offset.
type DigitsRequest struct {
	Client    string `json:"client"`
	CTZOffset string `json:"c_tz_offset"`
}

// DigitsResponse is the success payload for delegated login.
type DigitsResponse struct {
	Status      string `json:"status"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	UserID      string `json:"userId"`
	DigitsID    int64  `json:"digitsId"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	AuthToken   string `json:"authtoken"`
	Offset      int    `json:"offset"`
}

// DigitsResult is the internal result from the digits service.
type DigitsResult struct {
	UserID      string
	PhoneNumber string
	DigitsID    int64
	Email       string
	Token       string
}
