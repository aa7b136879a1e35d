package dto

type EditUsernameRequest struct {
	CurrentUsername string `json:"currentUsername"`
	NewUsername     string `json:"newUsername"`
}

type EditPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

type UserResponse struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Bookmarks []string `json:"bookmarks"`
}
