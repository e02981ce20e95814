package budget

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertType is the signal an alert was raised for.
type AlertType string

const (
	AlertPace     AlertType = "pace"
	AlertVariance AlertType = "variance"
	AlertHealth   AlertType = "health"
)

// Severity orders alerts and impacts.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

var (
	paceAlertRatio       = decimal.NewFromFloat(1.5)
	paceHighRatio        = decimal.NewFromInt(2)
	varianceAlertPercent = decimal.NewFromInt(20)
	healthAlertScore     = decimal.NewFromInt(70)
	healthHighScore      = decimal.NewFromInt(50)
)

// Alert is a predictive warning for a category.
type Alert struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Type         AlertType       `json:"type"`
	Severity     Severity        `json:"severity"`
	Message      string          `json:"message"`
	Value        decimal.Decimal `json:"value"`
}

// PredictiveAlerts derives pace, variance and health alerts from progress records.
//
// The result is sorted by severity, high first. Alerts of equal severity keep the
// order of the records.
func PredictiveAlerts(records []ProgressRecord) []Alert {
	alerts := make([]Alert, 0)

	for _, r := range records {
		if r.Pace.PaceRatio.GreaterThan(paceAlertRatio) {
			severity := SeverityMedium
			if r.Pace.PaceRatio.GreaterThan(paceHighRatio) {
				severity = SeverityHigh
			}

			alerts = append(alerts, Alert{
				CategoryID:   r.CategoryID,
				CategoryName: r.CategoryName,
				Type:         AlertPace,
				Severity:     severity,
				Message: fmt.Sprintf("Spending in %s is %sx the planned pace, %s over budget by the end of the period at this rate",
					r.CategoryName, r.Pace.PaceRatio.StringFixed(1), r.Pace.PredictedOverspend.StringFixed(2)),
				Value: r.Pace.PaceRatio,
			})
		}

		if r.Variance.VariancePercentage.Abs().GreaterThan(varianceAlertPercent) {
			direction := "above"
			if r.Variance.VariancePercentage.IsNegative() {
				direction = "below"
			}

			alerts = append(alerts, Alert{
				CategoryID:   r.CategoryID,
				CategoryName: r.CategoryName,
				Type:         AlertVariance,
				Severity:     SeverityMedium,
				Message: fmt.Sprintf("Spending in %s is %s%% %s the expected amount to date",
					r.CategoryName, r.Variance.VariancePercentage.Abs().StringFixed(1), direction),
				Value: r.Variance.VariancePercentage,
			})
		}

		if r.HealthScore.LessThan(healthAlertScore) {
			severity := SeverityMedium
			if r.HealthScore.LessThan(healthHighScore) {
				severity = SeverityHigh
			}

			alerts = append(alerts, Alert{
				CategoryID:   r.CategoryID,
				CategoryName: r.CategoryName,
				Type:         AlertHealth,
				Severity:     severity,
				Message:      fmt.Sprintf("Budget health of %s is %s out of 100", r.CategoryName, r.HealthScore.StringFixed(0)),
				Value:        r.HealthScore,
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})

	return alerts
}
