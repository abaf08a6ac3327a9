// Package engagement implements the QuestLog gamification engine: the XP
// level curve, consecutive-day streaks, the badge catalog and loot chests.
package engagement

import (
	"math"

	"github.com/questlog/questlog/internal/domain"
)

// MaxLevel caps the curve.
const MaxLevel = 100

// XPForLevel returns the cumulative XP required to reach a level.
// Exponential curve: 100 * 1.2^(level-1) for level >= 2, strictly increasing.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(100 * math.Pow(1.2, float64(level-1)))
}

// LevelForXP returns the largest level whose threshold is <= xp.
// Monotonically non-decreasing in xp.
func LevelForXP(xp int64) int {
	level := 1
	for level < MaxLevel {
		if xp < XPForLevel(level+1) {
			return level
		}
		level++
	}
	return MaxLevel
}

// ProgressToNext describes where xp sits between its level thresholds.
func ProgressToNext(xp int64) domain.LevelProgress {
	level := LevelForXP(xp)
	p := domain.LevelProgress{Level: level, NextLevel: level + 1}

	if level >= MaxLevel {
		p.NextLevel = MaxLevel
		p.ProgressPercent = 100.0
		return p
	}

	floor := XPForLevel(level)
	ceil := XPForLevel(level + 1)
	p.XPInLevel = xp - floor
	p.XPForNextLevel = ceil - floor
	if p.XPForNextLevel > 0 {
		p.ProgressPercent = float64(p.XPInLevel) / float64(p.XPForNextLevel) * 100.0
	}
	if p.ProgressPercent > 100 {
		p.ProgressPercent = 100
	}
	if p.ProgressPercent < 0 {
		p.ProgressPercent = 0
	}
	return p
}

// DetectLevelUp compares XP before and after one award. A crossing is
// reported once with the final level, even when several levels were crossed.
func DetectLevelUp(xpBefore, xpAfter int64) (domain.LevelUp, bool) {
	oldLevel := LevelForXP(xpBefore)
	newLevel := LevelForXP(xpAfter)
	if newLevel <= oldLevel {
		return domain.LevelUp{}, false
	}
	return domain.LevelUp{OldLevel: oldLevel, NewLevel: newLevel}, true
}
