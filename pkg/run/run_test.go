package run

import "testing"

func TestState_Reset(t *testing.T) {
	s := State{Score: 500, Credits: 90, Wave: 4, EnemiesRemaining: 3, BestScore: 800, FinalScore: 500, FinalWave: 4}
	s.Reset()
	want := State{Wave: 1, BestScore: 800}
	if s != want {
		t.Errorf("Reset() = %+v, want %+v", s, want)
	}
}

func TestState_Spend(t *testing.T) {
	tests := []struct {
		name    string
		credits float64
		cost    float64
		ok      bool
		left    float64
	}{
		{"affordable", 200, 120, true, 80},
		{"exact", 120, 120, true, 0},
		{"short", 119, 120, false, 119},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Credits: tt.credits}
			if got := s.Spend(tt.cost); got != tt.ok {
				t.Errorf("Spend() = %v, want %v", got, tt.ok)
			}
			if s.Credits != tt.left {
				t.Errorf("Credits = %v, want %v", s.Credits, tt.left)
			}
		})
	}
}

func TestState_EnemyKilledFloorsAtZero(t *testing.T) {
	s := State{EnemiesRemaining: 1}
	s.EnemyKilled()
	s.EnemyKilled()
	if s.EnemiesRemaining != 0 {
		t.Errorf("EnemiesRemaining = %d, want 0", s.EnemiesRemaining)
	}
}

func TestState_AddScoreMonotonic(t *testing.T) {
	s := State{}
	s.AddScore(10)
	s.AddScore(-5)
	if s.Score != 10 {
		t.Errorf("Score = %v, want 10", s.Score)
	}
}

func TestState_RecordBest(t *testing.T) {
	tests := []struct {
		name  string
		best  float64
		final float64
		want  bool
		after float64
	}{
		{"new best floors", 100, 212.5, true, 212},
		{"equal keeps", 212, 212, false, 212},
		{"fraction above keeps", 212, 212.5, false, 212},
		{"lower keeps", 300, 212.5, false, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{BestScore: tt.best, Score: tt.final, Wave: 3}
			s.Finish()
			if s.FinalWave != 3 {
				t.Errorf("FinalWave = %d, want 3", s.FinalWave)
			}
			if got := s.RecordBest(); got != tt.want {
				t.Errorf("RecordBest() = %v, want %v", got, tt.want)
			}
			if s.BestScore != tt.after {
				t.Errorf("BestScore = %v, want %v", s.BestScore, tt.after)
			}
		})
	}
}
