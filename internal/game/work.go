package game

import "math"

// Work progression: a cooldown-gated reward action with a streak ladder that
// shortens the cooldown and scales the payout. The streak update runs before
// the reward calculation; that ordering is load-bearing.

const (
	workBaseReward = uint64(100)

	streakWindowSeconds = int64(48 * 3600)
	daySeconds          = int64(24 * 3600)

	maxStreakBonus = uint32(50) // streak contribution caps at 50*2 = 100
)

// WorkOutcome reports what a successful do_work changed, for notifications.
type WorkOutcome struct {
	Reward       uint64 `json:"reward"`
	StreakBroken bool   `json:"streak_broken"`
	OldStreak    uint32 `json:"old_streak"`
	LeveledUp    bool   `json:"leveled_up"`
}

// NewPlayerState returns a freshly joined work-game identity with the
// starting credit grant and the novice 24h cooldown.
func NewPlayerState(owner string, now int64) *PlayerState {
	return &PlayerState{
		Owner:               owner,
		Credits:             StartingCredits,
		StreakCount:         0,
		WorkFrequencyLevel:  0,
		CooldownHours:       24,
		LastWorkTimestamp:   0,
		TotalWorkActions:    0,
		BusinessesOwned:     []uint8{},
		ActiveBusinessSlots: []uint8{},
		LastStreakCheck:     now,
	}
}

// DoWork validates the cooldown, advances the streak/level ladder, and pays
// the reward into the credits balance.
func DoWork(ps *PlayerState, now int64) (WorkOutcome, error) {
	cooldown := int64(ps.CooldownHours) * 3600
	elapsed := now - ps.LastWorkTimestamp
	if ps.LastWorkTimestamp != 0 && elapsed < cooldown {
		return WorkOutcome{}, ErrCooldownActive
	}

	out := WorkOutcome{OldStreak: ps.StreakCount}
	oldLevel := ps.WorkFrequencyLevel
	updateStreak(ps, now)
	if ps.StreakCount < out.OldStreak {
		out.StreakBroken = true
	}
	out.LeveledUp = ps.WorkFrequencyLevel > oldLevel

	reward := workReward(ps)

	if ps.Credits > math.MaxUint64-reward {
		return WorkOutcome{}, ErrMathOverflow
	}
	ps.LastWorkTimestamp = now
	ps.TotalWorkActions++
	ps.Credits += reward
	out.Reward = reward
	return out, nil
}

func updateStreak(ps *PlayerState, now int64) {
	elapsed := now - ps.LastWorkTimestamp

	switch {
	case ps.LastWorkTimestamp == 0:
		ps.StreakCount = 1
	case elapsed <= streakWindowSeconds:
		if elapsed >= daySeconds {
			ps.StreakCount++
			promoteLevel(ps)
		}
		// A same-day repeat neither breaks nor extends the streak.
	default:
		ps.StreakCount = 1
		ps.WorkFrequencyLevel = 0
		ps.CooldownHours = 24
	}
	ps.LastStreakCheck = now
}

// promoteLevel re-evaluates the level from the streak, moving upward only.
// Demotion happens exclusively through a streak break.
func promoteLevel(ps *PlayerState) {
	newLevel := levelForStreak(ps.StreakCount)
	if newLevel > ps.WorkFrequencyLevel {
		ps.WorkFrequencyLevel = newLevel
		ps.CooldownHours = cooldownHoursForLevel(newLevel)
	}
}

func levelForStreak(streak uint32) uint8 {
	switch {
	case streak <= 2:
		return 0
	case streak <= 6:
		return 1
	case streak <= 13:
		return 2
	case streak <= 29:
		return 3
	default:
		return 4
	}
}

func cooldownHoursForLevel(level uint8) uint8 {
	switch level {
	case 0:
		return 24
	case 1:
		return 18
	case 2:
		return 12
	case 3:
		return 9
	case 4:
		return 6
	default:
		return 24
	}
}

// workReward computes 100 * level multiplier * synergy multiplier + streak
// bonus, in that order, all integer arithmetic.
func workReward(ps *PlayerState) uint64 {
	reward := workBaseReward

	reward = reward * levelMultiplier(ps.WorkFrequencyLevel) / 100
	reward = reward * synergyMultiplier(len(ps.ActiveBusinessSlots)) / 100

	streak := ps.StreakCount
	if streak > maxStreakBonus {
		streak = maxStreakBonus
	}
	reward += uint64(streak) * 2
	return reward
}

func levelMultiplier(level uint8) uint64 {
	switch level {
	case 0:
		return 100
	case 1:
		return 125
	case 2:
		return 150
	case 3:
		return 175
	case 4:
		return 200
	default:
		return 100
	}
}

func synergyMultiplier(activeSlots int) uint64 {
	switch {
	case activeSlots <= 1:
		return 100
	case activeSlots == 2:
		return 125
	case activeSlots == 3:
		return 150
	case activeSlots == 4:
		return 175
	default:
		return 200
	}
}
