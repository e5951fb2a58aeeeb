package entity

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Estados de un usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un operador del panel de administración.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"` // bcrypt, nunca texto plano
	Name         string    `json:"name"`
	Role         string    `json:"role"`   // admin, editor
	Status       string    `json:"status"` // active, inactive
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
}
