package repository

import (
	"fmt"

	"github.com/Dan9191/property-service/internal/models"
)

// CreateReport records that a report was generated
func (r *Repository) CreateReport(rep *models.ReportRecord) error {
	query := `
		INSERT INTO realty.reports (id, property_id, format, score, recommendation, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query, rep.ID, rep.PropertyID, rep.Format, rep.Score, rep.Recommendation).
		Scan(&rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// ListReports returns the report history of a property, newest first
func (r *Repository) ListReports(propertyID int64) ([]models.ReportRecord, error) {
	query := `
		SELECT id, property_id, format, score, recommendation, created_at
		FROM realty.reports
		WHERE property_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []models.ReportRecord{}
	for rows.Next() {
		var rep models.ReportRecord
		if err := rows.Scan(&rep.ID, &rep.PropertyID, &rep.Format, &rep.Score, &rep.Recommendation, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}
