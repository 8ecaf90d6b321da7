// Package rules holds the pure business rules of the storefront: experience and
// levels, inspector eligibility, moderation transitions and cart arithmetic.
// Nothing here touches the store.
package rules

import (
	"fmt"
	"time"

	"pawmarket/internal/domain/entity"
	"pawmarket/pkg/errors"
)

// ExperiencePerLevel is the width of one level band.
const ExperiencePerLevel = 100

// LevelUpBonus is the number of points granted for each level gained.
const LevelUpBonus = 10

type award struct {
	experience int
	points     int
}

var awards = map[entity.ActionType]award{
	entity.ActionPostDaily: {experience: 5, points: 1},
	entity.ActionPostHelp:  {experience: 5, points: 1},
	entity.ActionComment:   {experience: 2, points: 1},
	entity.ActionLike:      {experience: 1},
	entity.ActionSolveHelp: {experience: 20, points: 10},
}

// ExperienceFor returns the fixed experience award for an action.
func ExperienceFor(action entity.ActionType) (int, bool) {
	a, ok := awards[action]
	return a.experience, ok
}

// LevelFor maps lifetime experience to a level: 0-99 is level 1, 100-199 level 2, ...
func LevelFor(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return experience/ExperiencePerLevel + 1
}

// NextLevelExperience is the experience at which the next level starts.
func NextLevelExperience(level int) int {
	if level < 1 {
		level = 1
	}
	return level * ExperiencePerLevel
}

type AwardResult struct {
	LevelUp             bool              `json:"level_up"`
	OldLevel            int               `json:"old_level"`
	NewLevel            int               `json:"new_level"`
	Experience          int               `json:"experience"`
	NextLevelExperience int               `json:"next_level_experience"`
	Points              int               `json:"points"`
	ExpGained           int               `json:"exp_gained"`
	PointsGained        int               `json:"points_gained"`
	Action              entity.ActionType `json:"action_type"`
}

// ApplyAward adds the award for action to p in place. The points credited are
// the action's own points, LevelUpBonus per level gained and extra, which
// carries a help post reward to its solver.
func ApplyAward(p *entity.UserProfile, action entity.ActionType, extra int, now time.Time) (AwardResult, error) {
	a, ok := awards[action]
	if !ok {
		return AwardResult{}, errors.InvalidArgument(fmt.Sprintf("unknown action type %q", action), nil)
	}
	if extra < 0 {
		return AwardResult{}, errors.InvalidArgument("award points cannot be negative", nil)
	}

	oldLevel := p.Level
	if oldLevel < 1 {
		oldLevel = 1
	}

	p.Experience += a.experience
	p.Level = oldLevel
	if lvl := LevelFor(p.Experience); lvl > p.Level {
		p.Level = lvl
	}
	gained := a.points + extra + (p.Level-oldLevel)*LevelUpBonus
	p.Points += gained
	p.UpdatedAt = now

	return AwardResult{
		LevelUp:             p.Level > oldLevel,
		OldLevel:            oldLevel,
		NewLevel:            p.Level,
		Experience:          p.Experience,
		NextLevelExperience: NextLevelExperience(p.Level),
		Points:              p.Points,
		ExpGained:           a.experience,
		PointsGained:        gained,
		Action:              action,
	}, nil
}

// AdjustPoints changes the point balance, refusing to go below zero.
func AdjustPoints(p *entity.UserProfile, delta int, now time.Time) error {
	if p.Points+delta < 0 {
		return errors.InvalidArgument(fmt.Sprintf("insufficient points: have %d, need %d", p.Points, -delta), nil)
	}
	p.Points += delta
	p.UpdatedAt = now
	return nil
}
