package entity

import "time"

// AdminCredential credencial del acceso administrativo (usuario + hash bcrypt).
type AdminCredential struct {
	Username     string
	PasswordHash string
	UpdatedAt    time.Time
}
