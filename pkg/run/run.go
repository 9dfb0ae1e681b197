// Package run holds the per-run bookkeeping shared by the simulation
// subsystems. The Game owns exactly one State.
package run

import "math"

// State is the run-level score and economy state.
type State struct {
	Score            float64
	Credits          float64
	Wave             int
	EnemiesRemaining int
	BestScore        float64
	FinalScore       float64
	FinalWave        int
}

// Reset starts a fresh run, keeping the best score.
func (s *State) Reset() {
	*s = State{
		Wave:      1,
		BestScore: s.BestScore,
	}
}

// AddScore raises the score. Negative amounts are ignored so the score stays
// monotonic within a run.
func (s *State) AddScore(amount float64) {
	if amount > 0 {
		s.Score += amount
	}
}

// AddCredits adds currency.
func (s *State) AddCredits(amount float64) {
	s.Credits += amount
}

// Spend deducts cost if affordable and reports success.
func (s *State) Spend(cost float64) bool {
	if s.Credits < cost {
		return false
	}
	s.Credits -= cost
	return true
}

// EnemyKilled decrements the remaining count, floored at zero.
func (s *State) EnemyKilled() {
	if s.EnemiesRemaining > 0 {
		s.EnemiesRemaining--
	}
}

// Finish records the final score and wave.
func (s *State) Finish() {
	s.FinalScore = s.Score
	s.FinalWave = s.Wave
}

// RecordBest raises the best score to floor(FinalScore) if that beats it.
// Best scores are whole numbers. It reports whether the best changed.
func (s *State) RecordBest() bool {
	best := math.Floor(s.FinalScore)
	if best <= s.BestScore {
		return false
	}
	s.BestScore = best
	return true
}
