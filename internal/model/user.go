package model

import "time"

// User represents an account record as stored in the `users` table.
// The json tags are omitted here because these structs are used by the
// repository and service layers; handlers define their own response types
// so that PasswordHash can never leak into a response body.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique, normalized (trimmed and lowercased) email address.
//  PasswordHash – bcrypt hash of the password.
//  Name         – display name, may be empty.
//  IsActive     – inactive users cannot authenticate or resolve tokens.
//  IsStaff      – set for accounts created through the superuser path.
//  IsSuperuser  – set for accounts created through the superuser path.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	IsActive     bool      // users.is_active
	IsStaff      bool      // users.is_staff
	IsSuperuser  bool      // users.is_superuser
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
