package services

import (
	"social_cases_go/models"

	"gorm.io/gorm"
)

// Stat is a labelled counter shown on the dashboard
type Stat struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// TotalCasesLabel labels the overall count of active cases
const TotalCasesLabel = "Total casos"

var lifecycleStates = []string{
	models.SocialCaseStateRequested,
	models.SocialCaseStateAssigned,
	models.SocialCaseStateClosed,
}

// GetDashboardStats counts active cases in total and per state. States with no
// cases are reported with a zero value, in lifecycle order.
func GetDashboardStats(db *gorm.DB) ([]Stat, error) {
	var rows []struct {
		State string
		Total int64
	}
	if err := db.Model(&models.SocialCase{}).
		Select("state, COUNT(*) AS total").
		Where("is_active = ?", true).
		Group("state").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byState := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		byState[r.State] = r.Total
		total += r.Total
	}

	stats := make([]Stat, 0, len(lifecycleStates)+1)
	stats = append(stats, Stat{Label: TotalCasesLabel, Value: total})
	for _, state := range lifecycleStates {
		stats = append(stats, Stat{Label: state, Value: byState[state]})
	}
	return stats, nil
}
