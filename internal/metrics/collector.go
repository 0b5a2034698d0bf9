package metrics

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MetricKey identifies a specific metric by type and key
type MetricKey struct {
	Type string // "file" | "stdin"
	Key  string
}

// String returns a string representation of the MetricKey
func (k MetricKey) String() string {
	return fmt.Sprintf("%s:%s", k.Type, k.Key)
}

// NewKey creates a new MetricKey with the given type and key
func NewKey(typ, key string) MetricKey {
	return MetricKey{Type: typ, Key: key}
}

// Removed counts what was stripped from one input.
type Removed struct {
	LineComments   int `json:"line_comments"`
	BlockComments  int `json:"block_comments"`
	TrailingCommas int `json:"trailing_commas"`
}

// MetricItem stores the metrics for a specific item
type MetricItem struct {
	BytesIn  int `json:"bytes_in"`
	BytesOut int `json:"bytes_out"`
	Lines    int `json:"lines"`
	Removed
}

// Add adds other to this item
func (m *MetricItem) Add(other MetricItem) {
	m.BytesIn += other.BytesIn
	m.BytesOut += other.BytesOut
	m.Lines += other.Lines
	m.LineComments += other.LineComments
	m.BlockComments += other.BlockComments
	m.TrailingCommas += other.TrailingCommas
}

// Entry is a key with its metrics.
type Entry struct {
	Key MetricKey
	MetricItem
}

// job represents a pending metrics calculation job
type job struct {
	key     MetricKey
	input   []byte
	output  []byte
	removed Removed
}

// Collector gathers per-input metrics on a pool of worker goroutines.
type Collector struct {
	mu    sync.Mutex
	wg    sync.WaitGroup
	once  sync.Once
	jobs  chan job
	Items map[MetricKey]MetricItem
	Ctr   Counter
}

// NewCollector creates a Collector with the given counter and worker count.
// Wait must be called to stop the workers.
func NewCollector(counter Counter, workers int) *Collector {
	if workers < 1 {
		workers = 1
	}

	m := &Collector{
		jobs:  make(chan job, workers*2),
		Items: make(map[MetricKey]MetricItem),
		Ctr:   counter,
	}

	m.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go m.worker()
	}

	return m
}

func (m *Collector) worker() {
	defer m.wg.Done()

	for job := range m.jobs {
		bytesIn, lines := m.Ctr.Count(job.input)
		bytesOut, _ := m.Ctr.Count(job.output)

		m.mu.Lock()
		item := m.Items[job.key]
		item.Add(MetricItem{
			BytesIn:  bytesIn,
			BytesOut: bytesOut,
			Lines:    lines,
			Removed:  job.removed,
		})
		m.Items[job.key] = item
		m.mu.Unlock()
	}
}

// Add queues one input/output pair. It must not be called after Wait.
func (m *Collector) Add(typ, key string, input, output []byte, removed Removed) {
	m.jobs <- job{key: NewKey(typ, key), input: input, output: output, removed: removed}
}

// Wait waits for all pending jobs to complete. It is idempotent.
func (m *Collector) Wait() {
	m.once.Do(func() {
		close(m.jobs)
	})
	m.wg.Wait()
}

// SumBy returns the sum of all metrics for the given type
func (m *Collector) SumBy(typeName string) MetricItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sum MetricItem
	for k, v := range m.Items {
		if k.Type == typeName {
			sum.Add(v)
		}
	}
	return sum
}

// Total returns the sum over all items.
func (m *Collector) Total() MetricItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sum MetricItem
	for _, v := range m.Items {
		sum.Add(v)
	}
	return sum
}

// Entries returns all items sorted by key.
func (m *Collector) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, len(m.Items))
	for k, v := range m.Items {
		entries = append(entries, Entry{Key: k, MetricItem: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Key.Type != entries[j].Key.Type {
			return entries[i].Key.Type < entries[j].Key.Type
		}
		return entries[i].Key.Key < entries[j].Key.Key
	})
	return entries
}

// MarshalJSON marshals the metrics to JSON with string keys
func (m *Collector) MarshalJSON() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make(map[string]MetricItem, len(m.Items))
	for k, v := range m.Items {
		result[k.String()] = v
	}

	return json.Marshal(result)
}
