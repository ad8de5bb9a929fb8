package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/property-service/internal/analyzer"
	"github.com/Dan9191/property-service/internal/integrations/sheets"
	"github.com/Dan9191/property-service/internal/metrics"
	"github.com/Dan9191/property-service/internal/models"
	"github.com/Dan9191/property-service/internal/report"
	"github.com/google/uuid"
)

// Evaluate computes the metrics of a record and scores them
func (s *Service) Evaluate(record models.PropertyRecord) models.Evaluation {
	m := metrics.Compute(record)
	return models.Evaluation{Metrics: m, Analysis: analyzer.Analyze(m)}
}

// CreateProperty saves a validated record for the current user
func (s *Service) CreateProperty(ctx context.Context, record models.PropertyRecord) (*models.Property, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validateStruct(record); err != nil {
		return nil, err
	}

	property := &models.Property{UserID: userID, Record: record}
	if err := s.repo.CreateProperty(property); err != nil {
		return nil, err
	}

	s.log.Infof("Property %d created for user %d", property.ID, userID)
	return property, nil
}

// GetProperty returns a property owned by the current user
func (s *Service) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	property, err := s.repo.GetProperty(id)
	if err != nil {
		return nil, err
	}
	if property.UserID != userID {
		return nil, ErrForbidden
	}
	return property, nil
}

// ListProperties returns the current user's properties
func (s *Service) ListProperties(ctx context.Context) ([]models.Property, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListProperties(userID)
}

// UpdateProperty replaces the record of an owned property
func (s *Service) UpdateProperty(ctx context.Context, id int64, record models.PropertyRecord) (*models.Property, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateStruct(record); err != nil {
		return nil, err
	}

	property.Record = record
	if err := s.repo.UpdateProperty(property); err != nil {
		return nil, err
	}

	s.log.Infof("Property %d updated", id)
	return property, nil
}

// DeleteProperty removes an owned property and its report history
func (s *Service) DeleteProperty(ctx context.Context, id int64) error {
	if _, err := s.GetProperty(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProperty(id); err != nil {
		return err
	}

	s.log.Infof("Property %d deleted", id)
	return nil
}

// AnalyzeProperty evaluates a saved property
func (s *Service) AnalyzeProperty(ctx context.Context, id int64) (*models.Evaluation, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	evaluation := s.Evaluate(property.Record)
	return &evaluation, nil
}

func (s *Service) reportInput(record models.PropertyRecord) report.Input {
	evaluation := s.Evaluate(record)
	return report.Input{
		Record:      record,
		Metrics:     evaluation.Metrics,
		Analysis:    evaluation.Analysis,
		GeneratedAt: s.now(),
	}
}

// GenerateReport renders a property report and records it in the history
func (s *Service) GenerateReport(ctx context.Context, id int64, format string) (*report.Document, error) {
	doc, in, err := s.renderReport(ctx, id, format)
	if err != nil {
		return nil, err
	}

	history := &models.ReportRecord{
		ID:             uuid.NewString(),
		PropertyID:     id,
		Format:         string(doc.Format),
		Score:          in.Analysis.Score,
		Recommendation: in.Analysis.Recommendation(),
	}
	if err := s.repo.CreateReport(history); err != nil {
		s.log.Errorf("Failed to record report for property %d: %v", id, err)
		return nil, err
	}

	s.log.Infof("Report %s generated for property %d (%s)", history.ID, id, doc.Format)
	return doc, nil
}

func (s *Service) renderReport(ctx context.Context, id int64, format string) (*report.Document, report.Input, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, report.Input{}, err
	}
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, report.Input{}, err
	}

	in := s.reportInput(property.Record)
	doc, err := report.Render(f, in)
	if err != nil {
		return nil, report.Input{}, fmt.Errorf("failed to render report: %w", err)
	}
	return doc, in, nil
}

// ListReports returns the report history of an owned property
func (s *Service) ListReports(ctx context.Context, id int64) ([]models.ReportRecord, error) {
	if _, err := s.GetProperty(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListReports(id)
}

// EmailReport renders a report and mails it as an attachment
func (s *Service) EmailReport(ctx context.Context, id int64, to, format string) error {
	if s.ext.Mailer == nil {
		return fmt.Errorf("email: %w", ErrNotConfigured)
	}
	if err := s.validate.Var(to, "required,email"); err != nil {
		return &ValidationError{Fields: map[string]string{"to": "email"}}
	}

	doc, in, err := s.renderReport(ctx, id, format)
	if err != nil {
		return err
	}
	if err := s.ext.Mailer.SendReport(to, in, doc); err != nil {
		return err
	}

	s.log.Infof("Report for property %d emailed to %s", id, to)
	return nil
}

// ExportToSheet appends the flattened analysis of a property to the spreadsheet
func (s *Service) ExportToSheet(ctx context.Context, id int64) error {
	if s.ext.Sheet == nil {
		return fmt.Errorf("spreadsheet: %w", ErrNotConfigured)
	}
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ext.Sheet.AppendAnalysis(ctx, s.reportInput(property.Record)); err != nil {
		s.log.Errorf("Failed to export property %d: %v", id, err)
		return err
	}

	s.log.Infof("Property %d exported to spreadsheet", id)
	return nil
}

// SheetInfo describes the connected spreadsheet
func (s *Service) SheetInfo(ctx context.Context) (*sheets.Info, error) {
	if s.ext.Sheet == nil {
		return nil, fmt.Errorf("spreadsheet: %w", ErrNotConfigured)
	}
	return s.ext.Sheet.Info(ctx)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
