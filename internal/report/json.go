package report

import (
	"encoding/json"
	"time"

	"github.com/Dan9191/property-service/internal/models"
)

type jsonReport struct {
	PropertyData      models.PropertyRecord `json:"property_data"`
	InvestmentMetrics models.Metrics        `json:"investment_metrics"`
	Analysis          models.Analysis       `json:"analysis"`
	GeneratedAt       string                `json:"report_generated_at"`
}

func renderJSON(in Input) ([]byte, error) {
	return json.MarshalIndent(jsonReport{
		PropertyData:      in.Record,
		InvestmentMetrics: in.Metrics,
		Analysis:          in.Analysis,
		GeneratedAt:       in.GeneratedAt.Format(time.RFC3339),
	}, "", "    ")
}
