package impulse

import "math"

// Scheduler turns variable frame durations into a whole number of fixed steps.
// Time left over after the last step is carried to the next frame.
type Scheduler struct {
	FixedStep   float64
	accumulator float64
}

func NewScheduler(fixedStep float64) *Scheduler {
	return &Scheduler{FixedStep: fixedStep}
}

// Advance adds frameDt to the accumulator and calls step once per whole FixedStep it holds.
// Negative, NaN and infinite durations are ignored. When step fails the remaining time,
// including the failed step, stays in the accumulator: the next call retries it and then
// catches up on the backlog. Call Reset to drop it instead.
func (s *Scheduler) Advance(frameDt float64, step func(dt float64) error) (int, error) {
	if !(frameDt > 0) || math.IsInf(frameDt, 0) || !(s.FixedStep > 0) {
		return 0, nil
	}

	s.accumulator += frameDt

	steps := 0
	for s.accumulator >= s.FixedStep {
		if err := step(s.FixedStep); err != nil {
			return steps, err
		}
		s.accumulator -= s.FixedStep
		steps++
	}

	return steps, nil
}

// Reset drops the accumulated time
func (s *Scheduler) Reset() {
	s.accumulator = 0
}

// Alpha is the fraction of a step left in the accumulator, to interpolate rendered states
func (s *Scheduler) Alpha() float64 {
	if !(s.FixedStep > 0) {
		return 0
	}

	return s.accumulator / s.FixedStep
}
