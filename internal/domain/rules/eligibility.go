package rules

import (
	"pawmarket/internal/domain/entity"
)

const (
	InspectorRequiredLevel  = 5
	InspectorRequiredPoints = 100
)

type Eligibility struct {
	Eligible       bool `json:"eligible"`
	Level          int  `json:"level"`
	Points         int  `json:"points"`
	RequiredLevel  int  `json:"required_level"`
	RequiredPoints int  `json:"required_points"`
}

func IsEligible(level, points int) bool {
	return level >= InspectorRequiredLevel && points >= InspectorRequiredPoints
}

func CheckEligibility(p *entity.UserProfile) Eligibility {
	return Eligibility{
		Eligible:       IsEligible(p.Level, p.Points),
		Level:          p.Level,
		Points:         p.Points,
		RequiredLevel:  InspectorRequiredLevel,
		RequiredPoints: InspectorRequiredPoints,
	}
}
