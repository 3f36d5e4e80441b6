package game

import (
	"errors"
	"testing"
)

const hour = int64(3600)

func TestDoWorkFirstCall(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	out, err := DoWork(ps, 1_000_000)
	if err != nil {
		t.Fatalf("first work: %v", err)
	}
	if ps.StreakCount != 1 || ps.WorkFrequencyLevel != 0 || ps.CooldownHours != 24 {
		t.Fatalf("first-work state wrong: %+v", ps)
	}
	// 100 * 1.0 * 1.0 + streak bonus 1*2.
	if out.Reward != 102 {
		t.Fatalf("first reward: got %d want 102", out.Reward)
	}
	if ps.Credits != StartingCredits+102 {
		t.Fatalf("credits: got %d want %d", ps.Credits, StartingCredits+102)
	}
	if ps.TotalWorkActions != 1 {
		t.Fatalf("work counter: got %d", ps.TotalWorkActions)
	}
}

func TestDoWorkCooldownActive(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	if _, err := DoWork(ps, 1000); err != nil {
		t.Fatalf("first work: %v", err)
	}
	if _, err := DoWork(ps, 1000+24*hour-1); !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("expected ErrCooldownActive, got %v", err)
	}
	// Nothing mutated by the rejected call.
	if ps.TotalWorkActions != 1 || ps.StreakCount != 1 {
		t.Fatalf("rejected work mutated state: %+v", ps)
	}
}

func TestWorkStreakLadder(t *testing.T) {
	// Five calls spaced exactly 24h30m apart: streak 5, level 1, 18h cooldown.
	ps := NewPlayerState("alice", 0)
	interval := 24*hour + 30*60
	now := int64(1_000_000)
	for i := 0; i < 5; i++ {
		if _, err := DoWork(ps, now); err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		now += interval
	}
	if ps.StreakCount != 5 {
		t.Fatalf("streak: got %d want 5", ps.StreakCount)
	}
	if ps.WorkFrequencyLevel != 1 {
		t.Fatalf("level: got %d want 1", ps.WorkFrequencyLevel)
	}
	if ps.CooldownHours != 18 {
		t.Fatalf("cooldown hours: got %d want 18", ps.CooldownHours)
	}

	// A 49-hour gap breaks the streak and resets the ladder.
	now = ps.LastWorkTimestamp + 49*hour
	out, err := DoWork(ps, now)
	if err != nil {
		t.Fatalf("post-gap work: %v", err)
	}
	if !out.StreakBroken {
		t.Fatalf("expected streak-broken outcome")
	}
	if ps.StreakCount != 1 || ps.WorkFrequencyLevel != 0 || ps.CooldownHours != 24 {
		t.Fatalf("reset state wrong: %+v", ps)
	}
}

func TestWorkLevelThresholds(t *testing.T) {
	tests := []struct {
		streak    uint32
		wantLevel uint8
	}{
		{1, 0}, {2, 0},
		{3, 1}, {6, 1},
		{7, 2}, {13, 2},
		{14, 3}, {29, 3},
		{30, 4}, {1000, 4},
	}
	for _, tc := range tests {
		if got := levelForStreak(tc.streak); got != tc.wantLevel {
			t.Fatalf("streak %d: level %d want %d", tc.streak, got, tc.wantLevel)
		}
	}
}

func TestWorkLevelNeverDemotesWithinStreak(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	ps.LastWorkTimestamp = 1000
	ps.StreakCount = 30
	ps.WorkFrequencyLevel = 4
	ps.CooldownHours = 6

	// Valid next-day increments keep the level even if the streak mapping
	// would place it lower (it cannot, but the guard is strictly-upward).
	updateStreak(ps, 1000+25*hour)
	if ps.WorkFrequencyLevel != 4 || ps.CooldownHours != 6 {
		t.Fatalf("level demoted inside streak: %+v", ps)
	}
}

func TestWorkSameDayRepeatKeepsStreak(t *testing.T) {
	ps := NewPlayerState("alice", 0)
	ps.StreakCount = 7
	ps.WorkFrequencyLevel = 2
	ps.CooldownHours = 12
	ps.LastWorkTimestamp = 1000

	// 12h cooldown allows a second same-day call; inside 24h it must not
	// extend the streak.
	out, err := DoWork(ps, 1000+13*hour)
	if err != nil {
		t.Fatalf("same-day work: %v", err)
	}
	if ps.StreakCount != 7 || out.StreakBroken {
		t.Fatalf("same-day work changed streak: %+v", ps)
	}
}

func TestWorkRewardMultipliers(t *testing.T) {
	tests := []struct {
		level      uint8
		slots      int
		streak     uint32
		wantReward uint64
	}{
		{0, 0, 1, 102},            // 100*1.0*1.0 + 2
		{1, 0, 3, 131},            // 100*1.25=125 + 6
		{2, 2, 7, 201},            // 100*1.5=150, *1.25=187, + 14
		{4, 5, 30, 460},           // 100*2.0=200, *2.0=400, + 60
		{4, 5, 75, 500},           // streak bonus caps at 100
		{3, 4, 14, 100*175/100*175/100 + 28}, // 306 + 28
	}
	for _, tc := range tests {
		ps := &PlayerState{
			WorkFrequencyLevel:  tc.level,
			StreakCount:         tc.streak,
			ActiveBusinessSlots: make([]uint8, tc.slots),
		}
		if got := workReward(ps); got != tc.wantReward {
			t.Fatalf("level=%d slots=%d streak=%d: reward %d want %d",
				tc.level, tc.slots, tc.streak, got, tc.wantReward)
		}
	}
}
