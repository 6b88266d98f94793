package model

import "time"

// User represents the authenticated owner account.
//
// We use Discord OAuth as the identity provider, so the primary external
// identifier is the Discord user ID (a snowflake, delivered as a string).
// We still generate our own internal string ID (xid) for consistency with
// TodoItem and to avoid tying our primary keys to a third-party's numbering
// scheme.
//
// WHY Email string (not *string)?
// Discord returns the account email only with the "email" scope, and it can
// be absent. We use an empty string as the zero value rather than a nullable
// pointer — simpler to work with and safe to display.
type User struct {
	ID            string    `json:"id"            db:"id"`
	DiscordID     string    `json:"discordId"     db:"discord_id"` // provider account id (snowflake)
	Email         string    `json:"email"         db:"email"`
	Name          string    `json:"name"          db:"name"`
	Username      string    `json:"username"      db:"username"`
	Discriminator string    `json:"discriminator" db:"discriminator"`
	Avatar        string    `json:"avatar"        db:"avatar"` // avatar hash, may be empty
	Image         string    `json:"image"         db:"image"`  // full avatar URL, may be empty
	Role          string    `json:"role"          db:"role"`
	LastLogin     time.Time `json:"lastLogin"     db:"last_login"`
	CreatedAt     time.Time `json:"createdAt"     db:"created_at"`
}
