package aggregate

import (
	"sort"

	"github.com/phrazzld/mnemo-api/internal/domain"
)

// RecentWindow is the number of most recent completed sessions that feed
// RecentScores and RecentAccuracies.
const RecentWindow = 10

// UserStats summarises one user's sessions per exercise type. Types are
// reported in domain.ExerciseTypes order and types without sessions are
// omitted. Sessions of unknown types are ignored.
func UserStats(sessions []*domain.Session) []domain.ExerciseStats {
	byType := make(map[domain.ExerciseType][]*domain.Session)
	for _, s := range sessions {
		if s != nil {
			byType[s.ExerciseType] = append(byType[s.ExerciseType], s)
		}
	}

	stats := make([]domain.ExerciseStats, 0, len(byType))
	for _, et := range domain.ExerciseTypes {
		group := byType[et]
		if len(group) == 0 {
			continue
		}
		stats = append(stats, exerciseStats(et, group))
	}
	return stats
}

func exerciseStats(et domain.ExerciseType, sessions []*domain.Session) domain.ExerciseStats {
	st := domain.ExerciseStats{
		ExerciseType:     et,
		TotalAttempts:    len(sessions),
		RecentScores:     []float64{},
		RecentAccuracies: []float64{},
	}

	var completed []*domain.Session
	for _, s := range sessions {
		if s.IsCompleted {
			completed = append(completed, s)
		}
	}
	st.CompletedAttempts = len(completed)
	if len(completed) == 0 {
		return st
	}

	var scoreSum, accuracySum, timeSum float64
	for _, s := range completed {
		accuracy := s.Accuracy()
		accuracySum += accuracy
		timeSum += float64(s.TimeElapsedMs)
		st.BestAccuracy = maxFloat(st.BestAccuracy, accuracy)

		if s.FinalScore != nil {
			scoreSum += *s.FinalScore
			st.BestScore = maxFloat(st.BestScore, *s.FinalScore)
		}
		if s.TimeElapsedMs > 0 && (st.FastestTimeMs == nil || s.TimeElapsedMs < *st.FastestTimeMs) {
			v := s.TimeElapsedMs
			st.FastestTimeMs = &v
		}
		// a zero sequence means none was reached, as in scoring
		if s.MaxSequenceReached != nil && *s.MaxSequenceReached > 0 &&
			(st.LongestSequence == nil || *s.MaxSequenceReached > *st.LongestSequence) {
			v := *s.MaxSequenceReached
			st.LongestSequence = &v
		}
	}

	n := float64(len(completed))
	avgScore, avgAccuracy, avgTime := scoreSum/n, accuracySum/n, timeSum/n
	st.AvgScore = &avgScore
	st.AvgAccuracy = &avgAccuracy
	st.AvgTimeMs = &avgTime

	recent := make([]*domain.Session, len(completed))
	copy(recent, completed)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > RecentWindow {
		recent = recent[:RecentWindow]
	}
	for _, s := range recent {
		if s.FinalScore != nil {
			st.RecentScores = append(st.RecentScores, *s.FinalScore)
		}
		st.RecentAccuracies = append(st.RecentAccuracies, s.Accuracy())
	}

	// Improvement trend is not computed.
	st.ImprovementRate = nil
	return st
}

func maxFloat(current *float64, v float64) *float64 {
	if current != nil && *current >= v {
		return current
	}
	return &v
}
