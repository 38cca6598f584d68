package response

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
