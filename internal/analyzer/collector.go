package analyzer

import (
	"runtime"
	"sort"
	"sync"
)

// Match is one reported pair of structurally similar functions. Matches
// are immutable once built.
type Match struct {
	A          *FunctionRecord
	B          *FunctionRecord
	Similarity float64
	// Priority is the ranking key: the larger function's line count times
	// the similarity score.
	Priority float64
}

// CollectorConfig holds the scalar configuration for match collection.
// Callers validate ranges (Threshold in [0,1]; MinLines, MinTokens >= 1);
// the collector behaves sensibly at the boundaries either way: threshold
// 0 matches everything passing the filters, threshold 1 only perfect
// scores.
type CollectorConfig struct {
	Threshold   float64
	MinLines    int
	MinTokens   int
	SizePenalty bool
	CrossFile   bool

	// Workers caps the number of goroutines evaluating pairs. Zero or
	// negative means one worker per CPU.
	Workers int
}

// DefaultCollectorConfig returns the collector defaults.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		Threshold:   0.8,
		MinLines:    5,
		MinTokens:   20,
		SizePenalty: true,
		CrossFile:   true,
	}
}

// MatchCollector evaluates every unordered record pair, filters, scores,
// and ranks the survivors.
type MatchCollector struct {
	config CollectorConfig
}

// NewMatchCollector creates a collector with the given configuration.
func NewMatchCollector(config CollectorConfig) *MatchCollector {
	return &MatchCollector{config: config}
}

// Collect returns every surviving pair sorted by priority descending.
// Records whose line count is below MinLines or whose node count is below
// MinTokens never appear in any match. With CrossFile disabled, records
// from different files are never paired.
//
// Pairs are independent, so the outer index is partitioned across a
// worker pool; each worker appends to a private slice and the partial
// results are merged before the single observable ordering contract, the
// final sort, is applied.
func (mc *MatchCollector) Collect(records []*FunctionRecord) []*Match {
	n := len(records)
	if n < 2 {
		return nil
	}

	// Cheap per-record filters are decided once, not per pair.
	eligible := make([]bool, n)
	for i, rec := range records {
		eligible[i] = rec.LineCount() >= mc.config.MinLines && rec.NodeCount >= mc.config.MinTokens
	}

	workers := mc.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	indexes := make(chan int, n)
	for i := 0; i < n; i++ {
		indexes <- i
	}
	close(indexes)

	partials := make([][]*Match, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var local []*Match
			for i := range indexes {
				if !eligible[i] {
					continue
				}
				for j := i + 1; j < n; j++ {
					if !eligible[j] {
						continue
					}
					if m := mc.comparePair(records[i], records[j]); m != nil {
						local = append(local, m)
					}
				}
			}
			partials[w] = local
		}(w)
	}
	wg.Wait()

	var matches []*Match
	for _, local := range partials {
		matches = append(matches, local...)
	}

	sortMatches(matches)
	return matches
}

// CollectEach streams the ranked matches one at a time. The full pair
// evaluation and sort still happen up front; only the sorted sequence is
// an observable contract. Returning false from yield stops the stream.
func (mc *MatchCollector) CollectEach(records []*FunctionRecord, yield func(*Match) bool) {
	for _, m := range mc.Collect(records) {
		if !yield(m) {
			return
		}
	}
}

// comparePair applies the remaining filters and scores one pair. The
// cheap cross-file check runs before the tree edit distance is paid.
func (mc *MatchCollector) comparePair(a, b *FunctionRecord) *Match {
	if !mc.config.CrossFile && a.FilePath != b.FilePath {
		return nil
	}

	similarity := Similarity(a, b, mc.config.SizePenalty)
	if similarity < mc.config.Threshold {
		return nil
	}

	maxLines := a.LineCount()
	if lb := b.LineCount(); lb > maxLines {
		maxLines = lb
	}

	return &Match{
		A:          a,
		B:          b,
		Similarity: similarity,
		Priority:   float64(maxLines) * similarity,
	}
}

// sortMatches orders matches by priority descending, breaking ties on
// the two locations so output is reproducible.
func sortMatches(matches []*Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Priority != matches[j].Priority {
			return matches[i].Priority > matches[j].Priority
		}
		return lessLocation(matches[i], matches[j])
	})
}

func lessLocation(x, y *Match) bool {
	if x.A.FilePath != y.A.FilePath {
		return x.A.FilePath < y.A.FilePath
	}
	if x.A.StartLine != y.A.StartLine {
		return x.A.StartLine < y.A.StartLine
	}
	if x.B.FilePath != y.B.FilePath {
		return x.B.FilePath < y.B.FilePath
	}
	return x.B.StartLine < y.B.StartLine
}
