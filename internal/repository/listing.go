package repository

import (
	"encoding/json"
	"fmt"

	"github.com/Dan9191/property-service/internal/models"
)

// UpsertListing inserts or refreshes a listing keyed by its sheet ID
func (r *Repository) UpsertListing(l models.Listing) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}
	query := `
		INSERT INTO realty.listings (id, property_type, data, synced_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE
		SET property_type = EXCLUDED.property_type, data = EXCLUDED.data, synced_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Exec(query, l.ID, l.PropertyType, string(data)); err != nil {
		return fmt.Errorf("failed to upsert listing %s: %w", l.ID, err)
	}
	return nil
}

// ListListings returns all synced listings ordered by ID
func (r *Repository) ListListings() ([]models.Listing, error) {
	rows, err := r.db.Query(`SELECT data FROM realty.listings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		var l models.Listing
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("failed to decode listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}
