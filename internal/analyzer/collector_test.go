package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// permissiveConfig disables every filter except the threshold so tests
// can exercise one knob at a time.
func permissiveConfig() CollectorConfig {
	return CollectorConfig{
		Threshold:   0.5,
		MinLines:    1,
		MinTokens:   1,
		SizePenalty: true,
		CrossFile:   true,
		Workers:     1,
	}
}

func makeRecord(file, name string, start, end int, body *Node) *FunctionRecord {
	root := NewRoot(body)
	return &FunctionRecord{
		FilePath:  file,
		Name:      name,
		StartLine: start,
		EndLine:   end,
		Tree:      root,
		NodeCount: BodySize(root),
	}
}

func TestDefaultCollectorConfig(t *testing.T) {
	config := DefaultCollectorConfig()

	assert.Equal(t, 0.8, config.Threshold)
	assert.Equal(t, 5, config.MinLines)
	assert.Equal(t, 20, config.MinTokens)
	assert.True(t, config.SizePenalty)
	assert.True(t, config.CrossFile)
}

func TestCollector_FindsIdenticalPair(t *testing.T) {
	records := []*FunctionRecord{
		makeRecord("a.go", "a", 1, 5, returnLitPlusLit()),
		makeRecord("a.go", "b", 10, 14, returnLitPlusLit()),
	}

	matches := NewMatchCollector(permissiveConfig()).Collect(records)

	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].A.Name)
	assert.Equal(t, "b", matches[0].B.Name)
	assert.Equal(t, 1.0, matches[0].Similarity)
	assert.Equal(t, 5.0, matches[0].Priority, "priority is max line count times similarity")
}

func TestCollector_FewerThanTwoRecords(t *testing.T) {
	collector := NewMatchCollector(permissiveConfig())

	assert.Nil(t, collector.Collect(nil))
	assert.Nil(t, collector.Collect([]*FunctionRecord{
		makeRecord("a.go", "a", 1, 5, returnLit()),
	}))
}

func TestCollector_MinLinesFilter(t *testing.T) {
	config := permissiveConfig()
	config.MinLines = 5

	records := []*FunctionRecord{
		makeRecord("a.go", "short", 1, 3, returnLitPlusLit()),
		makeRecord("a.go", "long", 10, 14, returnLitPlusLit()),
	}

	matches := NewMatchCollector(config).Collect(records)

	assert.Empty(t, matches, "a record below min lines never appears in any match")
}

func TestCollector_MinTokensFilter(t *testing.T) {
	config := permissiveConfig()
	config.MinTokens = 4

	records := []*FunctionRecord{
		makeRecord("a.go", "tiny", 1, 5, returnLit()),
		makeRecord("a.go", "big", 10, 14, returnLitPlusLit()),
		makeRecord("a.go", "big2", 20, 24, returnLitPlusLit()),
	}

	matches := NewMatchCollector(config).Collect(records)

	require.Len(t, matches, 1)
	assert.Equal(t, "big", matches[0].A.Name)
	assert.Equal(t, "big2", matches[0].B.Name)
}

func TestCollector_CrossFile(t *testing.T) {
	records := []*FunctionRecord{
		makeRecord("a.go", "a", 1, 5, returnLitPlusLit()),
		makeRecord("b.go", "b", 1, 5, returnLitPlusLit()),
	}

	crossOn := permissiveConfig()
	assert.Len(t, NewMatchCollector(crossOn).Collect(records), 1)

	crossOff := permissiveConfig()
	crossOff.CrossFile = false
	assert.Empty(t, NewMatchCollector(crossOff).Collect(records))
}

func TestCollector_CrossFileStillPairsWithinFile(t *testing.T) {
	config := permissiveConfig()
	config.CrossFile = false

	records := []*FunctionRecord{
		makeRecord("a.go", "a", 1, 5, returnLitPlusLit()),
		makeRecord("a.go", "b", 10, 14, returnLitPlusLit()),
		makeRecord("b.go", "c", 1, 5, returnLitPlusLit()),
	}

	matches := NewMatchCollector(config).Collect(records)

	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].A.Name)
	assert.Equal(t, "b", matches[0].B.Name)
}

func TestCollector_ThresholdExcludesDissimilarPairs(t *testing.T) {
	config := permissiveConfig()
	config.Threshold = 0.9

	records := []*FunctionRecord{
		makeRecord("a.go", "small", 1, 5, returnLit()),
		makeRecord("a.go", "large", 10, 14, returnLitPlusLit()),
	}

	matches := NewMatchCollector(config).Collect(records)

	assert.Empty(t, matches)
}

func TestCollector_PriorityOrdering(t *testing.T) {
	bigBody := func() *Node {
		block := NewNode(KindKeyword, ValueBlock)
		for i := 0; i < 4; i++ {
			block.AddChild(NewNode(KindKeyword, "return", NewLeaf(KindLiteral, ValueLit)))
		}
		return block
	}

	records := []*FunctionRecord{
		makeRecord("a.go", "smallA", 1, 5, returnLitPlusLit()),
		makeRecord("a.go", "smallB", 10, 14, returnLitPlusLit()),
		makeRecord("b.go", "bigA", 1, 20, bigBody()),
		makeRecord("b.go", "bigB", 30, 49, bigBody()),
	}

	matches := NewMatchCollector(permissiveConfig()).Collect(records)

	require.Len(t, matches, 2)
	assert.Equal(t, "bigA", matches[0].A.Name, "larger pair ranks first")
	assert.Equal(t, "smallA", matches[1].A.Name)
	assert.Greater(t, matches[0].Priority, matches[1].Priority)
}

func TestCollector_TieBreakIsDeterministic(t *testing.T) {
	records := []*FunctionRecord{
		makeRecord("b.go", "b1", 1, 5, returnLitPlusLit()),
		makeRecord("b.go", "b2", 10, 14, returnLitPlusLit()),
		makeRecord("a.go", "a1", 1, 5, returnLit()),
		makeRecord("a.go", "a2", 10, 14, returnLit()),
	}

	matches := NewMatchCollector(permissiveConfig()).Collect(records)

	// Both pairs score 1.0 over 5 lines; equal priority falls back to
	// location order.
	require.Len(t, matches, 2)
	assert.Equal(t, "a.go", matches[0].A.FilePath)
	assert.Equal(t, "b.go", matches[1].A.FilePath)
}

func TestCollector_WorkerCountDoesNotChangeResults(t *testing.T) {
	var records []*FunctionRecord
	for i := 0; i < 12; i++ {
		file := "a.go"
		if i%2 == 0 {
			file = "b.go"
		}
		body := returnLitPlusLit()
		if i%3 == 0 {
			body = returnLit()
		}
		records = append(records, makeRecord(file, "f", i*10+1, i*10+5, body))
	}

	single := permissiveConfig()
	single.Workers = 1
	parallel := permissiveConfig()
	parallel.Workers = 4

	got1 := NewMatchCollector(single).Collect(records)
	got4 := NewMatchCollector(parallel).Collect(records)

	require.Equal(t, len(got1), len(got4))
	for i := range got1 {
		assert.Equal(t, got1[i].A.Location(), got4[i].A.Location())
		assert.Equal(t, got1[i].B.Location(), got4[i].B.Location())
		assert.Equal(t, got1[i].Similarity, got4[i].Similarity)
	}
}

func TestCollector_CollectEachStopsEarly(t *testing.T) {
	records := []*FunctionRecord{
		makeRecord("a.go", "a", 1, 5, returnLitPlusLit()),
		makeRecord("a.go", "b", 10, 14, returnLitPlusLit()),
		makeRecord("a.go", "c", 20, 24, returnLitPlusLit()),
	}

	var seen int
	NewMatchCollector(permissiveConfig()).CollectEach(records, func(m *Match) bool {
		seen++
		return seen < 2
	})

	assert.Equal(t, 2, seen)
}
