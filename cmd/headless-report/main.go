package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/config"
	"github.com/Garsondee/little-boxes/internal/scenario"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	outcome battle.OutcomeReport

	firstHitTick     int
	firstKillTick    int
	lastKillTick     int
	victoryTick      int
	hits             int
	blocks           int
	kills            int
	absorbs          int
	revivals         int
	trails           int
	killsByTeam      map[string]int
	projectilesAtEnd int
	grades           []battle.UnitGrade
}

func main() {
	var (
		runs       int
		ticks      int
		seedBase   int64
		seedStep   int64
		name       string
		file       string
		configPath string
		verbose    bool
	)

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "maximum ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&name, "scenario", "", "built-in scenario name (default from config)")
	flag.StringVar(&file, "file", "", "scenario YAML file, overrides -scenario")
	flag.StringVar(&configPath, "config", "", "config file (default ./littleboxes.yaml)")
	flag.BoolVar(&verbose, "verbose", false, "also record per-tick trail particles in the event log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if name == "" {
		name = cfg.Scenario.Name
	}
	if file == "" {
		file = cfg.Scenario.Path
	}
	sc, err := scenario.Resolve(file, name)
	if err != nil {
		fmt.Printf("error: %v (built-in: %s)\n", err, strings.Join(scenario.Names(), ", "))
		os.Exit(1)
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", sc.Name, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runScenario(cfg, sc, i+1, seed, ticks, verbose)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

// runScenario plays sc with the given seed until a victory is declared, every
// unit is down, or ticks run out. A verbose run also logs trail particles.
func runScenario(cfg config.Config, sc *scenario.Scenario, runIndex int, seed int64, ticks int, verbose bool) (runStats, error) {
	sl := battle.NewSimLog(verbose)
	opts := append(cfg.BattleOptions(), battle.WithSeed(seed), battle.WithSimLog(sl))
	b, err := sc.NewBattle(opts...)
	if err != nil {
		return runStats{}, err
	}

	for i := 0; i < ticks; i++ {
		b.Update()
		if _, won := b.Banner(); won {
			break
		}
		if b.Outcome().Outcome == battle.OutcomeDraw {
			break
		}
	}
	return collectStats(runIndex, seed, b, sl), nil
}

func collectStats(runIndex int, seed int64, b *battle.Battle, sl *battle.SimLog) runStats {
	rs := runStats{
		runIndex:      runIndex,
		seed:          seed,
		ticks:         b.Tick(),
		outcome:       b.Outcome(),
		firstHitTick:  firstTick(sl, "combat", "hit"),
		firstKillTick: firstTick(sl, "combat", "kill"),
		lastKillTick:  -1,
		victoryTick:   firstTick(sl, "battle", "victory"),
		hits:          sl.CountCategory("combat", "hit"),
		blocks:        sl.CountCategory("combat", "block"),
		kills:         sl.CountCategory("combat", "kill"),
		absorbs:       sl.CountCategory("combat", "absorb"),
		revivals:      sl.CountCategory("unit", "resurrect"),
		trails:        sl.CountCategory("unit", "trail"),
		killsByTeam:   map[string]int{},
	}
	if e, ok := sl.LastOf("combat", "kill"); ok {
		rs.lastKillTick = e.Tick
	}
	for _, e := range sl.Filter("combat", "kill") {
		rs.killsByTeam[e.Team]++
	}
	b.View(func(units []*battle.Unit, projectiles []*battle.Projectile, _ []*battle.Particle) {
		rs.projectilesAtEnd = len(projectiles)
		rs.grades = battle.GradeUnits(sl, units)
	})
	return rs
}

func firstTick(sl *battle.SimLog, category, key string) int {
	if e, ok := sl.FirstOf(category, key); ok {
		return e.Tick
	}
	return -1
}

// detectStalemate flags a run that ended undecided with no unit dying in
// the last quarter of the run.
func detectStalemate(rs runStats) (bool, string) {
	if rs.outcome.Outcome != battle.OutcomeInconclusive {
		return false, "decided:" + rs.outcome.Outcome.String()
	}
	standing := 0
	for _, n := range rs.outcome.Survivors {
		if n > 0 {
			standing++
		}
	}
	if standing < 2 {
		return false, "single_team"
	}
	quiet := rs.ticks - rs.ticks/4
	if rs.lastKillTick >= quiet {
		return false, fmt.Sprintf("late_kill_at_T=%d", rs.lastKillTick)
	}
	return true, fmt.Sprintf("no_kills_after_T=%d teams_standing=%d", quiet, standing)
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome: %s ticks=%d\n", rs.outcome, rs.ticks)
	fmt.Printf("phase_markers: first_hit=%d first_kill=%d last_kill=%d victory=%d\n",
		rs.firstHitTick, rs.firstKillTick, rs.lastKillTick, rs.victoryTick)
	fmt.Printf("event_totals: hit=%d block=%d kill=%d absorb=%d resurrect=%d projectiles_in_flight=%d\n",
		rs.hits, rs.blocks, rs.kills, rs.absorbs, rs.revivals, rs.projectilesAtEnd)
	fmt.Printf("losses_by_team: %s\n", joinCounts(rs.killsByTeam))
	if rs.trails > 0 {
		fmt.Printf("trail_particles: %d\n", rs.trails)
	}
	if stale, reason := detectStalemate(rs); stale {
		fmt.Printf("stalemate: %s\n", reason)
	}
	fmt.Print(battle.FormatGrades(rs.grades))
	fmt.Println()
}

func printAggregate(all []runStats) {
	wins := map[string]int{}
	draws, open, stalemates := 0, 0, 0
	totalHits, totalBlocks, totalKills := 0, 0, 0
	var killTicks, victoryTicks []int

	for _, rs := range all {
		switch rs.outcome.Outcome {
		case battle.OutcomeVictory:
			wins[battle.TeamName(rs.outcome.Winner)]++
		case battle.OutcomeDraw:
			draws++
		default:
			open++
		}
		if stale, _ := detectStalemate(rs); stale {
			stalemates++
		}
		totalHits += rs.hits
		totalBlocks += rs.blocks
		totalKills += rs.kills
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.victoryTick >= 0 {
			victoryTicks = append(victoryTicks, rs.victoryTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d wins=[%s] draws=%d undecided=%d stalemates=%d\n",
		len(all), joinCounts(wins), draws, open, stalemates)
	fmt.Printf("avg_events_per_run: hit=%.1f block=%.1f kill=%.1f\n",
		avg(totalHits, len(all)), avg(totalBlocks, len(all)), avg(totalKills, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s victory=%s\n",
		avgTickString(killTicks), avgTickString(victoryTicks))

	fmt.Println("\n=== Aggregate Kind Performance ===")
	for _, row := range kindPerformance(all) {
		fmt.Printf("  %-18s %-2s (avg=%.1f) survival=%.0f%% n=%d", row.kind, battle.LetterGrade(row.avgScore), row.avgScore, row.survRate, row.count)
		if row.topGood != "" {
			fmt.Printf("  good=%s", row.topGood)
		}
		if row.topBad != "" {
			fmt.Printf("  bad=%s", row.topBad)
		}
		fmt.Println()
	}
}

type kindRow struct {
	kind     battle.UnitKind
	count    int
	avgScore float64
	survRate float64
	topGood  string
	topBad   string
}

// kindPerformance averages unit grades per kind across every run.
func kindPerformance(all []runStats) []kindRow {
	type agg struct {
		scoreSum float64
		count    int
		survived int
		good     map[string]int
		bad      map[string]int
	}
	aggs := map[battle.UnitKind]*agg{}
	for _, rs := range all {
		for _, g := range rs.grades {
			a, ok := aggs[g.Kind]
			if !ok {
				a = &agg{good: map[string]int{}, bad: map[string]int{}}
				aggs[g.Kind] = a
			}
			a.scoreSum += g.Score
			a.count++
			if g.Survived {
				a.survived++
			}
			for _, t := range g.GoodTraits {
				a.good[t]++
			}
			for _, t := range g.BadTraits {
				a.bad[t]++
			}
		}
	}

	rows := make([]kindRow, 0, len(aggs))
	for k, a := range aggs {
		rows = append(rows, kindRow{
			kind:     k,
			count:    a.count,
			avgScore: a.scoreSum / float64(a.count),
			survRate: float64(a.survived) / float64(a.count) * 100,
			topGood:  topTrait(a.good),
			topBad:   topTrait(a.bad),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].kind < rows[j].kind })
	return rows
}

// topTrait returns the most frequent trait, ties broken alphabetically.
func topTrait(counts map[string]int) string {
	best, bestN := "", 0
	for k, v := range counts {
		if v > bestN || (v == bestN && k < best) {
			best, bestN = k, v
		}
	}
	if bestN == 0 {
		return ""
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, ",")
}
