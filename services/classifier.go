package services

import "github.com/rBrgv/KRF-sub000/models"

// Classification thresholds. A score exactly on a threshold gets the higher label.
const (
	ExcellentThreshold = 85.0
	GoodThreshold      = 70.0
	WarningThreshold   = 50.0
)

// Classify maps an overall score to its label. It is total: NaN falls to high_alert.
func Classify(overall float64) models.HealthLabel {
	switch {
	case overall >= ExcellentThreshold:
		return models.LabelExcellent
	case overall >= GoodThreshold:
		return models.LabelGood
	case overall >= WarningThreshold:
		return models.LabelWarning
	default:
		return models.LabelHighAlert
	}
}
