package services

import (
	"context"
	"fmt"

	"github.com/nmalet/blog-backend/internal/metrics"
	"github.com/nmalet/blog-backend/internal/models"
	repo "github.com/nmalet/blog-backend/internal/repository"
	"github.com/nmalet/blog-backend/internal/worker"
)

// CommentXP is awarded once per successful comment creation.
const CommentXP = 10

// progressionRetries bounds the optimistic update loop under
// contention from concurrent comments by the same user.
const progressionRetries = 5

// ProgressionService applies experience updates. After every award the
// user's xp sits in [0, 100*level) and level never decreases; crossing
// the threshold increments the level and resets xp to zero, discarding
// any overflow.
type ProgressionService struct {
	users    repo.Users
	activity repo.Activity
	wp       *worker.Pool
}

func NewProgressionService(users repo.Users, activity repo.Activity, wp *worker.Pool) *ProgressionService {
	return &ProgressionService{users: users, activity: activity, wp: wp}
}

// Advance normalizes xp+award into the progression invariant and
// reports whether a level-up happened.
func Advance(xp, level, award int) (newXP, newLevel int, leveled bool) {
	newXP, newLevel = xp+award, level
	for newXP >= 100*newLevel {
		newLevel++
		newXP = 0
		leveled = true
	}
	return newXP, newLevel, leveled
}

// AwardCommentXP adds CommentXP to the user's progression. The write is
// a compare-and-swap against the xp/level the user was read at, retried
// a bounded number of times, so concurrent awards cannot lose updates.
func (s *ProgressionService) AwardCommentXP(ctx context.Context, userID string) (models.User, error) {
	for i := 0; i < progressionRetries; i++ {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return models.User{}, err
		}
		newXP, newLevel, leveled := Advance(u.XP, u.Level, CommentXP)
		ok, err := s.users.UpdateProgress(ctx, u.ID, u.XP, u.Level, newXP, newLevel)
		if err != nil {
			return models.User{}, err
		}
		if !ok {
			continue
		}
		u.XP, u.Level = newXP, newLevel
		if leveled {
			metrics.LevelUps.Inc()
			s.recordLevelUp(u.ID, newLevel)
		}
		return u, nil
	}
	return models.User{}, fmt.Errorf("progression update for user %s: contention not resolved after %d attempts", userID, progressionRetries)
}

func (s *ProgressionService) recordLevelUp(userID string, level int) {
	id := userID
	s.wp.Submit(func() {
		_ = s.activity.Create(context.Background(), models.ActivityRecord{
			EntityType: "user",
			EntityID:   &id,
			Action:     "level_up",
			Details:    map[string]any{"level": level},
		})
	})
}
