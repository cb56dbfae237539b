package dto

// CustomerResponse is a customer row as listed by GET /users.
type CustomerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CustomerAddress is the projection served by GET /users/addresses.
type CustomerAddress struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
