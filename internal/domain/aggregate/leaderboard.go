// Package aggregate derives leaderboards and per-user statistics from
// collections of session records. The functions are pure reductions over
// a point-in-time snapshot and never touch storage.
package aggregate

import (
	"sort"

	"github.com/phrazzld/mnemo-api/internal/domain"
)

// Leaderboard ranks the completed, scored sessions by final score,
// highest first, and keeps at most limit entries. Equal scores keep
// their input order. A non-positive limit yields an empty board.
func Leaderboard(sessions []*domain.Session, limit int) []domain.LeaderboardEntry {
	ranked := make([]*domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if s != nil && s.IsCompleted && s.FinalScore != nil {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].FinalScore > *ranked[j].FinalScore
	})

	if limit < 0 {
		limit = 0
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]domain.LeaderboardEntry, len(ranked))
	for i, s := range ranked {
		entries[i] = domain.LeaderboardEntry{
			Rank:          i + 1,
			SessionID:     s.ID,
			UserID:        s.UserID,
			Score:         *s.FinalScore,
			Accuracy:      s.Accuracy(),
			TimeElapsedMs: s.TimeElapsedMs,
			Difficulty:    s.Difficulty,
			CompletedAt:   s.CompletedAt,
		}
	}
	return entries
}

// MarkCurrentUser flags the entries belonging to userID.
func MarkCurrentUser(entries []domain.LeaderboardEntry, userID int64) {
	for i := range entries {
		entries[i].IsCurrentUser = entries[i].UserID == userID
	}
}
