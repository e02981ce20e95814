package budget

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	lowSavingsRate  = decimal.NewFromInt(10)
	highSavingsRate = decimal.NewFromInt(25)
)

// Recommendation suggests a methodology type.
type Recommendation struct {
	MethodologyType MethodologyType `json:"methodologyType"`
	Reason          string          `json:"reason"`
	Confidence      int             `json:"confidence"`
	BestFor         string          `json:"bestFor"`
}

// FinancialProfile is the input for methodology recommendations.
type FinancialProfile struct {
	TotalIncome            decimal.Decimal `json:"totalIncome"`
	TotalExpenses          decimal.Decimal `json:"totalExpenses"`
	SavingsRate            decimal.Decimal `json:"savingsRate"`
	CategoriesCount        int             `json:"categoriesCount"`
	OverspendingCategories int             `json:"overspendingCategories"`
}

// SavingsRate returns the share of income that was not spent, in percent.
// It is 0 if there is no income.
func SavingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(hundred)
}

// NewFinancialProfile builds the profile from income, expenses and the current progress.
func NewFinancialProfile(income, expenses decimal.Decimal, records []ProgressRecord) FinancialProfile {
	over := 0
	for _, r := range records {
		if r.Status == StatusOver {
			over++
		}
	}

	return FinancialProfile{
		TotalIncome:            income,
		TotalExpenses:          expenses,
		SavingsRate:            SavingsRate(income, expenses),
		CategoriesCount:        len(records),
		OverspendingCategories: over,
	}
}

// RecommendMethodologies returns all methodology types that fit the profile,
// highest confidence first.
func RecommendMethodologies(p FinancialProfile) []Recommendation {
	recommendations := make([]Recommendation, 0, 3)

	if p.SavingsRate.LessThan(lowSavingsRate) {
		recommendations = append(recommendations, Recommendation{
			MethodologyType: MethodologyZeroBased,
			Reason:          fmt.Sprintf("Your savings rate is %s%%. Assigning every unit of income a job helps to find room for savings.", p.SavingsRate.StringFixed(1)),
			Confidence:      85,
			BestFor:         "Maximizing savings and controlling all spending",
		})
	}

	if p.SavingsRate.GreaterThanOrEqual(lowSavingsRate) && p.SavingsRate.LessThanOrEqual(highSavingsRate) {
		recommendations = append(recommendations, Recommendation{
			MethodologyType: MethodologyPercentageBased,
			Reason:          fmt.Sprintf("Your savings rate of %s%% is balanced. A percentage split keeps it stable with little effort.", p.SavingsRate.StringFixed(1)),
			Confidence:      80,
			BestFor:         "Balanced budgeting with simple rules",
		})
	}

	if p.OverspendingCategories > 0 {
		recommendations = append(recommendations, Recommendation{
			MethodologyType: MethodologyEnvelope,
			Reason:          fmt.Sprintf("%d categories are over their budget. Fixed envelopes make limits visible.", p.OverspendingCategories),
			Confidence:      75,
			BestFor:         "Controlling overspending in specific categories",
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Confidence > recommendations[j].Confidence
	})

	return recommendations
}

// ImpactSeverity classifies the effect of a transaction on its category budget.
type ImpactSeverity string

const (
	ImpactCritical ImpactSeverity = "critical"
	ImpactWarning  ImpactSeverity = "warning"
	ImpactLow      ImpactSeverity = "low"
	ImpactNone     ImpactSeverity = "none"
)

// Impact is the effect of a single expense on the budget of its category
// in the current month.
type Impact struct {
	TransactionID     uuid.UUID       `json:"transactionId"`
	TransactionAmount decimal.Decimal `json:"transactionAmount"`
	CategoryName      string          `json:"categoryName"`
	BudgetLimit       decimal.Decimal `json:"budgetLimit"`
	SpendingBefore    decimal.Decimal `json:"spendingBefore"`
	SpendingAfter     decimal.Decimal `json:"spendingAfter"`
	PercentageBefore  decimal.Decimal `json:"percentageBefore"`
	PercentageAfter   decimal.Decimal `json:"percentageAfter"`
	PercentageChange  decimal.Decimal `json:"percentageChange"`
	Severity          ImpactSeverity  `json:"severity"`
	Message           string          `json:"message"`
	Recommendations   []string        `json:"recommendations"`
}

// TransactionImpact computes the impact of an expense transaction.
//
// monthSpent is the absolute expense sum of the category in the month of
// the transaction, including the transaction itself.
func TransactionImpact(category Category, transaction Transaction, monthSpent decimal.Decimal) Impact {
	amount := transaction.Amount.Abs()

	impact := Impact{
		TransactionID:     transaction.ID,
		TransactionAmount: amount,
		CategoryName:      category.Name,
		BudgetLimit:       category.Limit(),
		SpendingBefore:    monthSpent.Sub(amount),
		SpendingAfter:     monthSpent,
		PercentageBefore:  decimal.Zero,
		PercentageAfter:   decimal.Zero,
		PercentageChange:  decimal.Zero,
	}

	if !category.HasBudget() {
		impact.Severity = ImpactNone
		impact.Message = "No budget configured for this category"
		impact.Recommendations = []string{}
		return impact
	}

	impact.PercentageBefore = impact.SpendingBefore.Div(impact.BudgetLimit).Mul(hundred)
	impact.PercentageAfter = impact.SpendingAfter.Div(impact.BudgetLimit).Mul(hundred)
	impact.PercentageChange = impact.PercentageAfter.Sub(impact.PercentageBefore)

	switch {
	case impact.PercentageAfter.GreaterThan(hundred):
		impact.Severity = ImpactCritical
		impact.Message = "Pushes category over budget limit"
		impact.Recommendations = []string{
			fmt.Sprintf("Consider reducing spending in %s", category.Name),
			"Review and adjust budget limit if necessary",
			"Look for cost-saving alternatives",
		}
	case impact.PercentageAfter.GreaterThan(warningThreshold):
		impact.Severity = ImpactWarning
		impact.Message = "Pushes category into warning zone"
		impact.Recommendations = []string{
			fmt.Sprintf("Monitor %s spending closely", category.Name),
			"Consider reallocating funds from other categories",
			"Plan for reduced spending in remaining days",
		}
	default:
		impact.Severity = ImpactLow
		impact.Message = "Minimal impact on budget"
		impact.Recommendations = []string{
			"Budget impact is minimal",
			"Continue current spending patterns",
		}
	}

	return impact
}

// PerformanceScore is the average health score of all budgeted records.
// Without budgeted records, it is 100.
func PerformanceScore(records []ProgressRecord) decimal.Decimal {
	sum := decimal.Zero
	count := 0

	for _, r := range records {
		if !r.BudgetLimit.IsPositive() {
			continue
		}
		sum = sum.Add(r.HealthScore)
		count++
	}

	if count == 0 {
		return decimal.NewFromInt(100)
	}

	return sum.Div(decimal.NewFromInt(int64(count)))
}
