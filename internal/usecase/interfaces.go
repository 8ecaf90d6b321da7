package usecase

import "pawmarket/internal/domain/entity"

// Recorder receives business events worth counting. The prometheus collector in
// infrastructure/metrics implements it.
type Recorder interface {
	ExperienceAwarded(action entity.ActionType, levelUp bool)
	ReviewDecided(target entity.ReviewTaskType, decision entity.Decision)
	CheckoutFinished(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ExperienceAwarded(entity.ActionType, bool)            {}
func (nopRecorder) ReviewDecided(entity.ReviewTaskType, entity.Decision) {}
func (nopRecorder) CheckoutFinished(string)                              {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
