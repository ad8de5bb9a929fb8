package repository

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dan9191/property-service/internal/models"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

//go:embed schema.sql
var schema string

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the realty schema and tables if they are missing
func (r *Repository) Migrate() error {
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO realty.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM realty.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateProperty stores a property record for a user
func (r *Repository) CreateProperty(p *models.Property) error {
	record, err := json.Marshal(p.Record)
	if err != nil {
		return fmt.Errorf("failed to encode property record: %w", err)
	}
	query := `
		INSERT INTO realty.properties (user_id, address, record, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err = r.db.QueryRow(query, p.UserID, p.Record.Address, string(record)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetProperty retrieves a property by ID
func (r *Repository) GetProperty(id int64) (*models.Property, error) {
	query := `
		SELECT id, user_id, record, created_at, updated_at
		FROM realty.properties
		WHERE id = $1`
	p, err := scanProperty(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %d %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

// ListProperties returns all properties owned by a user, newest first
func (r *Repository) ListProperties(userID int64) ([]models.Property, error) {
	query := `
		SELECT id, user_id, record, created_at, updated_at
		FROM realty.properties
		WHERE user_id = $1
		ORDER BY updated_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// UpdateProperty replaces the stored record
func (r *Repository) UpdateProperty(p *models.Property) error {
	record, err := json.Marshal(p.Record)
	if err != nil {
		return fmt.Errorf("failed to encode property record: %w", err)
	}
	query := `
		UPDATE realty.properties
		SET address = $2, record = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err = r.db.QueryRow(query, p.ID, p.Record.Address, string(record)).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("property %d %w", p.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

// DeleteProperty removes a property and its report history
func (r *Repository) DeleteProperty(id int64) error {
	res, err := r.db.Exec(`DELETE FROM realty.properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("property %d %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*models.Property, error) {
	p := &models.Property{}
	var record []byte
	if err := row.Scan(&p.ID, &p.UserID, &record, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(record, &p.Record); err != nil {
		return nil, fmt.Errorf("failed to decode property record: %w", err)
	}
	return p, nil
}
