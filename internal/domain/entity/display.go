package entity

import "github.com/sirupsen/logrus"

// StatusDisplay is the patient-facing presentation of a lifecycle status.
type StatusDisplay struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// warnUnmappedStatus records a status value that has no display entry.
// An unmapped value means the producer and this service disagree on the
// taxonomy; the display layer falls back instead of crashing.
func warnUnmappedStatus(taxonomy, value string) {
	logrus.WithFields(logrus.Fields{
		"taxonomy": taxonomy,
		"value":    value,
	}).Warn("unmapped status value")
}

// Vertical identifies the treatment vertical an order or subscription
// belongs to.
type Vertical string

const (
	VerticalHairLoss         Vertical = "HAIR_LOSS"
	VerticalSexualHealth     Vertical = "SEXUAL_HEALTH"
	VerticalPCOS             Vertical = "PCOS"
	VerticalWeightManagement Vertical = "WEIGHT_MANAGEMENT"
)

// AllVerticals lists every treatment vertical.
var AllVerticals = []Vertical{
	VerticalHairLoss,
	VerticalSexualHealth,
	VerticalPCOS,
	VerticalWeightManagement,
}

func (v Vertical) Valid() bool {
	for _, known := range AllVerticals {
		if v == known {
			return true
		}
	}
	return false
}
