// Package hitrate recomputes historical hit-rate statistics for
// arbitrary lines from per-game outcome history, including lines the
// collaborator never explicitly tracked.
package hitrate

import (
	"math"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// AlternateLineThreshold is how far a requested line must sit from the
// profile's standard line before the precomputed histogram stops being
// trustworthy and we rescan the raw game log instead.
const AlternateLineThreshold = 0.5

// IsAlternateLine reports whether targetLine is far enough from the
// standard line to require direct recomputation from recent games.
func IsAlternateLine(standardLine, targetLine float64) bool {
	return math.Abs(targetLine-standardLine) >= AlternateLineThreshold
}

// Recalculate computes the hit rate for one window at the target line.
//
// For alternate lines the most recent N games are scanned directly:
// a game hits an over when its stat value is >= the line, and an under
// when it is strictly below. Otherwise the window's precomputed
// histogram is summed, which is cheaper and was built for the standard
// line. Empty history yields zero rates with TotalGames 0, not an error.
func Recalculate(profile models.HitRateProfile, targetLine float64, direction models.Side, window models.Window) models.HitRateResult {
	if IsAlternateLine(profile.Line, targetLine) {
		res := scanRecentGames(profile.RecentGames, window.Size(), targetLine, direction)
		res.Window = window
		res.IsAlternateLine = true
		return res
	}

	res := fromHistogram(profile.Histogram[window], targetLine, direction)
	res.Window = window
	return res
}

// RecalculateAll computes every recency window for the target line.
// The season entry for alternate lines is derived from the largest
// recent-games window as a proxy, since no season histogram exists for
// a line that was never tracked. For standard-line unders the cached
// season rate flips, assuming the collaborator precomputed it for overs.
func RecalculateAll(profile models.HitRateProfile, targetLine float64, direction models.Side) []models.HitRateResult {
	windows := []models.Window{models.WindowLast5, models.WindowLast10, models.WindowLast20}

	results := make([]models.HitRateResult, 0, len(windows)+1)
	for _, w := range windows {
		results = append(results, Recalculate(profile, targetLine, direction, w))
	}

	results = append(results, seasonResult(profile, targetLine, direction))
	return results
}

func seasonResult(profile models.HitRateProfile, targetLine float64, direction models.Side) models.HitRateResult {
	if IsAlternateLine(profile.Line, targetLine) {
		res := scanRecentGames(profile.RecentGames, 0, targetLine, direction)
		res.Window = models.WindowSeason
		res.IsAlternateLine = true
		return res
	}

	res := models.HitRateResult{Window: models.WindowSeason, TotalGames: profile.SeasonGamesCount}
	if profile.SeasonHitRate != nil {
		pct := *profile.SeasonHitRate
		if direction == models.SideUnder {
			pct = 100 - pct
		}
		res.HitRatePct = int(math.Round(pct))
		res.SuccessfulCount = int(math.Round(pct / 100 * float64(profile.SeasonGamesCount)))
	}
	res.AvgStatPerGame = profile.AvgStatPerGame
	return res
}

// scanRecentGames counts direction hits among the most recent n entries
// of a most-recent-first game log. n <= 0 scans everything available.
func scanRecentGames(games []models.GameStat, n int, targetLine float64, direction models.Side) models.HitRateResult {
	if n <= 0 || n > len(games) {
		n = len(games)
	}

	hits := 0
	totalStats := 0.0
	for _, g := range games[:n] {
		if hit(g.StatValue, targetLine, direction) {
			hits++
		}
		totalStats += g.StatValue
	}

	return buildResult(hits, n, totalStats)
}

// fromHistogram sums a value → count histogram at or beyond the line.
func fromHistogram(histogram map[int]int, targetLine float64, direction models.Side) models.HitRateResult {
	hits := 0
	total := 0
	totalStats := 0.0

	for value, count := range histogram {
		if hit(float64(value), targetLine, direction) {
			hits += count
		}
		total += count
		totalStats += float64(value) * float64(count)
	}

	return buildResult(hits, total, totalStats)
}

func hit(value, line float64, direction models.Side) bool {
	if direction == models.SideOver {
		return value >= line
	}
	return value < line
}

func buildResult(hits, total int, totalStats float64) models.HitRateResult {
	res := models.HitRateResult{
		TotalGames:      total,
		SuccessfulCount: hits,
	}

	if total == 0 {
		return res
	}

	res.HitRatePct = int(math.Round(float64(hits) / float64(total) * 100))
	// One decimal place, matching how averages are displayed downstream.
	res.AvgStatPerGame = math.Round(totalStats/float64(total)*10) / 10

	return res
}
