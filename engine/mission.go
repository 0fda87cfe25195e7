package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"backend/models"
)

// metricFns resolves a mission's metric code to a pure projection over the
// snapshot. Keeping the registry here (rather than closures on the mission)
// lets missions survive backup round-trips.
var metricFns = map[string]func(*Snapshot) float64{
	models.MetricTotalRevenue: func(snap *Snapshot) float64 {
		var total float64
		for _, s := range snap.Sales {
			total += s.Amount
		}
		return SafeRound(total)
	},
	models.MetricTotalProfit: func(snap *Snapshot) float64 {
		var total float64
		for _, s := range snap.Sales {
			total += s.Profit
		}
		return SafeRound(total)
	},
	models.MetricSalesCount: func(snap *Snapshot) float64 {
		return float64(len(snap.Sales))
	},
	models.MetricDistinctBatchesSold: func(snap *Snapshot) float64 {
		seen := map[string]bool{}
		for _, s := range snap.Sales {
			seen[s.BatchID] = true
		}
		return float64(len(seen))
	},
	models.MetricCustomerCount: func(snap *Snapshot) float64 {
		return float64(len(snap.Customers))
	},
	models.MetricMaxCustomerLevel: func(snap *Snapshot) float64 {
		max := 0
		for _, c := range snap.Customers {
			if lvl := c.Level(); lvl > max {
				max = lvl
			}
		}
		return float64(max)
	},
}

// AddMission registers a declarative goal against a known metric.
func (s *Store) AddMission(title, metric string, goalValue float64, rewardXP int) (models.Mission, error) {
	if strings.TrimSpace(title) == "" {
		return models.Mission{}, fmt.Errorf("%w: mission title is required", ErrValidation)
	}
	if _, ok := metricFns[metric]; !ok {
		return models.Mission{}, fmt.Errorf("%w: unknown mission metric %q", ErrValidation, metric)
	}
	if !validNumber(goalValue) || goalValue <= 0 {
		return models.Mission{}, fmt.Errorf("%w: goal value must be a positive number", ErrValidation)
	}

	var created models.Mission
	err := s.mutate(func(snap *Snapshot) error {
		m := models.Mission{
			ID:        uuid.NewString(),
			Title:     title,
			Metric:    metric,
			GoalValue: goalValue,
			RewardXP:  rewardXP,
		}
		snap.Missions = append(snap.Missions, m)
		created = m
		return nil
	})
	return created, err
}

// EvaluateMissions recomputes progress for every unclaimed mission and
// returns the ones that completed on this pass. Re-evaluating an
// already-complete mission is a no-op, so callers can fire notifications
// for the returned slice without deduplicating.
func (s *Store) EvaluateMissions() ([]models.Mission, error) {
	var completed []models.Mission
	err := s.mutate(func(snap *Snapshot) error {
		for i := range snap.Missions {
			m := &snap.Missions[i]
			if m.IsClaimed {
				continue
			}
			fn, ok := metricFns[m.Metric]
			if !ok {
				continue
			}
			m.Progress = fn(snap)
			wasComplete := m.IsComplete
			m.IsComplete = m.Progress >= m.GoalValue
			if m.IsComplete && !wasComplete {
				completed = append(completed, *m)
			}
		}
		return nil
	})
	return completed, err
}

// ClaimMission pays out a completed mission's reward exactly once. The
// second return value is false when there is nothing to claim (not complete
// yet, or already claimed); that case changes no state.
func (s *Store) ClaimMission(id string) (int, bool, error) {
	var (
		reward  int
		claimed bool
	)
	err := s.mutate(func(snap *Snapshot) error {
		m, err := findMission(snap, id)
		if err != nil {
			return err
		}
		if !m.IsComplete || m.IsClaimed {
			return nil
		}
		m.IsClaimed = true
		snap.Settings.OperatorXP += m.RewardXP
		reward = m.RewardXP
		claimed = true
		return nil
	})
	return reward, claimed, err
}

func (s *Store) Missions() []models.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Mission(nil), s.snap.Missions...)
}
