package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/legacytex"
)

// Default memory limits.
const (
	// DefaultMaxMemoryMB is the default video memory budget (256 MB).
	DefaultMaxMemoryMB = 256

	// MinMemoryMB is the minimum allowed memory budget (16 MB).
	MinMemoryMB = 16
)

// MemoryStats contains video memory budget statistics.
type MemoryStats struct {
	// TotalBytes is the total memory budget in bytes.
	TotalBytes uint64

	// UsedBytes is the memory currently reported as consumed.
	UsedBytes uint64

	// AvailableBytes is the remaining memory budget.
	AvailableBytes uint64

	// Refusals counts requests rejected for exceeding the budget.
	Refusals uint64

	// Utilization is the fraction of the budget used (0.0 to 1.0).
	Utilization float64
}

// String returns a human-readable string of memory stats.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%.1f%% used, %d/%d KB, %d refusals]",
		s.Utilization*100,
		s.UsedBytes/1024,
		s.TotalBytes/1024,
		s.Refusals)
}

// MemoryBudget tracks the video memory textures report as consumed and
// refuses requests that would exceed the budget. It implements
// legacytex.MemoryReporter.
//
// MemoryBudget is safe for concurrent use.
type MemoryBudget struct {
	mu sync.Mutex

	budgetBytes uint64
	usedBytes   uint64
	refusals    uint64
}

// NewMemoryBudget creates a budget of megabytes MB. Values below
// MinMemoryMB select DefaultMaxMemoryMB.
func NewMemoryBudget(megabytes int) *MemoryBudget {
	if megabytes < MinMemoryMB {
		megabytes = DefaultMaxMemoryMB
	}
	//nolint:gosec // G115: megabytes bounded by MinMemoryMB minimum
	return &MemoryBudget{budgetBytes: uint64(megabytes) * 1024 * 1024}
}

// ChangeReportedMemory adjusts the available memory by delta bytes.
// Negative deltas consume memory and are refused when they exceed what
// is left; positive deltas return memory.
func (m *MemoryBudget) ChangeReportedMemory(delta int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if delta >= 0 {
		//nolint:gosec // G115: delta is non-negative
		returned := uint64(delta)
		if returned > m.usedBytes {
			returned = m.usedBytes
		}
		m.usedBytes -= returned
		return true
	}

	//nolint:gosec // G115: delta is negative
	requested := uint64(-delta)
	if available := m.availableLocked(); requested > available {
		m.refusals++
		legacytex.Logger().Warn("native: memory budget exceeded",
			"requested", requested,
			"available", available)
		return false
	}
	m.usedBytes += requested
	return true
}

// Stats returns current memory usage statistics.
func (m *MemoryBudget) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var utilization float64
	if m.budgetBytes > 0 {
		utilization = float64(m.usedBytes) / float64(m.budgetBytes)
	}
	return MemoryStats{
		TotalBytes:     m.budgetBytes,
		UsedBytes:      m.usedBytes,
		AvailableBytes: m.availableLocked(),
		Refusals:       m.refusals,
		Utilization:    utilization,
	}
}

// SetBudget updates the memory budget. Memory already in use is kept even
// when it exceeds the new budget; further requests are refused until
// enough is returned.
func (m *MemoryBudget) SetBudget(megabytes int) {
	if megabytes < MinMemoryMB {
		megabytes = MinMemoryMB
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	//nolint:gosec // G115: megabytes bounded by MinMemoryMB minimum
	m.budgetBytes = uint64(megabytes) * 1024 * 1024
}

// availableLocked returns the unused budget. Caller must hold mu.
func (m *MemoryBudget) availableLocked() uint64 {
	if m.usedBytes >= m.budgetBytes {
		return 0
	}
	return m.budgetBytes - m.usedBytes
}
