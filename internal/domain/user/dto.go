package user

// UserResponse represents user data in API responses
type UserResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	EmployeeID  *string  `json:"employee_id,omitempty"`
	Pages       []Page   `json:"pages"`
	Permissions []string `json:"permissions"`
}

// PagesResponse lists what the caller may open in the dashboard.
type PagesResponse struct {
	Role  string `json:"role"`
	Pages []Page `json:"pages"`
}

func ToResponse(u User) UserResponse {
	perms := RolePermissions[u.Role]
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, string(p))
	}
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		EmployeeID:  u.EmployeeID,
		Pages:       VisiblePages(u.Role),
		Permissions: names,
	}
}
