package main

import (
	"sync"

	"go.uber.org/zap"

	"github.com/yonti32-ux/roguelike-sub002/internal/battle"
)

// share is one contributor's damage and its fraction of the batch total.
type share struct {
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

// Summary is the batch report written in place of a single battle result.
type Summary struct {
	Runs         int              `json:"runs"`
	Failed       int              `json:"failed"`
	AllyWinRate  float64          `json:"ally_win_rate"`
	EnemyWinRate float64          `json:"enemy_win_rate"`
	DrawRate     float64          `json:"draw_rate"`
	AvgRounds    float64          `json:"avg_rounds"`
	AvgReactions float64          `json:"avg_reactions"`
	TotalDamage  int              `json:"total_damage"`
	ByUnit       map[string]share `json:"by_unit"`
	BySkill      map[string]share `json:"by_skill"`
	Kills        map[string]int   `json:"kills,omitempty"`
}

// batchStats folds battle results together. It is safe for concurrent use.
type batchStats struct {
	mu        sync.Mutex
	ok        int
	failed    int
	rounds    int
	reactions int
	wins      map[string]int
	byUnit    map[string]int
	bySkill   map[string]int
	kills     map[string]int
}

func newBatchStats() *batchStats {
	return &batchStats{
		wins:    map[string]int{},
		byUnit:  map[string]int{},
		bySkill: map[string]int{},
		kills:   map[string]int{},
	}
}

func (b *batchStats) record(res battle.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ok++
	b.wins[res.Winner]++
	b.rounds += res.Rounds
	b.reactions += res.Reactions
	for k, v := range res.DamageByUnit {
		b.byUnit[k] += v
	}
	for k, v := range res.DamageBySkill {
		b.bySkill[k] += v
	}
	for k, v := range res.Kills {
		b.kills[k] += v
	}
}

func (b *batchStats) fail() {
	b.mu.Lock()
	b.failed++
	b.mu.Unlock()
}

// summary computes rates over every run, failures included. Damage shares are
// taken against the sum of per-skill damage.
func (b *batchStats) summary() Summary {
	b.mu.Lock()
	defer b.mu.Unlock()

	runs := b.ok + b.failed
	total := 0
	for _, v := range b.bySkill {
		total += v
	}
	s := Summary{
		Runs:        runs,
		Failed:      b.failed,
		TotalDamage: total,
		ByUnit:      shares(b.byUnit, total),
		BySkill:     shares(b.bySkill, total),
	}
	if len(b.kills) > 0 {
		s.Kills = make(map[string]int, len(b.kills))
		for k, v := range b.kills {
			s.Kills[k] = v
		}
	}
	if runs > 0 {
		s.AllyWinRate = float64(b.wins[battle.WinnerAlly]) / float64(runs)
		s.EnemyWinRate = float64(b.wins[battle.WinnerEnemy]) / float64(runs)
		s.DrawRate = float64(b.wins[battle.WinnerDraw]) / float64(runs)
	}
	if b.ok > 0 {
		s.AvgRounds = float64(b.rounds) / float64(b.ok)
		s.AvgReactions = float64(b.reactions) / float64(b.ok)
	}
	return s
}

func shares(m map[string]int, total int) map[string]share {
	out := make(map[string]share, len(m))
	for k, v := range m {
		sh := share{Total: v}
		if total > 0 {
			sh.Ratio = float64(v) / float64(total)
		}
		out[k] = sh
	}
	return out
}

// runBatch plays n battles over a worker pool. Each run gets its own seed so
// results do not depend on scheduling.
func runBatch(setup battle.Setup, n, workers, rounds int, seed int64, log *zap.Logger) *batchStats {
	st := newBatchStats()
	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < max(1, workers); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cfg := setup
				cfg.Seed = runSeed(seed, i)
				cfg.Logger = log
				s, err := battle.New(cfg)
				var res battle.Result
				if err == nil {
					res, err = s.Run(rounds)
				}
				if err != nil {
					st.fail()
					log.Warn("battle failed", zap.Int("run", i), zap.Int64("seed", cfg.Seed), zap.Error(err))
					continue
				}
				st.record(res)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return st
}

func runSeed(base int64, run int) int64 {
	return base + int64(run)*7919
}
