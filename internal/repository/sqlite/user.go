package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Upsert inserts or updates a user based on their Discord account id.
//
// First sign-in → INSERT with a fresh internal ID. Subsequent sign-ins →
// UPDATE the profile fields (they can change on Discord's side) and stamp
// last_login. We look up the existing internal ID first — if the user
// exists we KEEP their ID rather than minting a new one.
func (db *DB) Upsert(ctx context.Context, user *model.User) error {
	var existingID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM users WHERE discord_id = ?`, user.DiscordID,
	).Scan(&existingID)

	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: looking up user by discord_id %s: %w", user.DiscordID, err)
	}

	user.LastLogin = time.Now()

	if existingID != "" {
		user.ID = existingID
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users
			 SET email = ?, name = ?, username = ?, discriminator = ?,
				 avatar = ?, image = ?, last_login = ?
			 WHERE id = ?`,
			user.Email,
			user.Name,
			user.Username,
			user.Discriminator,
			user.Avatar,
			user.Image,
			user.LastLogin,
			user.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
		}
		return nil
	}

	user.ID = xid.New().String()
	user.CreatedAt = user.LastLogin

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, discord_id, email, name, username, discriminator,
							avatar, image, role, last_login, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.DiscordID,
		user.Email,
		user.Name,
		user.Username,
		user.Discriminator,
		user.Avatar,
		user.Image,
		user.Role,
		user.LastLogin,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (discordID=%s): %w", user.DiscordID, err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, discord_id, email, name, username, discriminator,
				avatar, image, role, last_login, created_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&u.ID,
		&u.DiscordID,
		&u.Email,
		&u.Name,
		&u.Username,
		&u.Discriminator,
		&u.Avatar,
		&u.Image,
		&u.Role,
		&u.LastLogin,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &u, nil
}
