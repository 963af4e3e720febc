// Package metric provides process sampling and Prometheus metrics for instrumented calls.
package metric

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/procfs"
)

// ErrMemTotalUnavailable is returned when total physical memory is unknown.
var ErrMemTotalUnavailable = errors.New("metric: total memory unavailable")

// ProcessSampler reads resource usage of the current process.
type ProcessSampler interface {
	// CPUSeconds returns the user+system CPU time consumed so far.
	CPUSeconds() (float64, error)
	// MemoryPercent returns resident memory as a percentage of total memory.
	MemoryPercent() (float64, error)
}

// ProcSampler samples the current process through /proc.
type ProcSampler struct {
	fs      procfs.FS
	initErr error

	once     sync.Once
	memTotal uint64
	memErr   error
}

// NewProcSampler creates a sampler backed by the default procfs mount.
// On systems without procfs every reading returns an error.
func NewProcSampler() *ProcSampler {
	fs, err := procfs.NewDefaultFS()
	return &ProcSampler{fs: fs, initErr: err}
}

// CPUSeconds implements ProcessSampler.
func (s *ProcSampler) CPUSeconds() (float64, error) {
	stat, err := s.stat()
	if err != nil {
		return 0, err
	}
	return stat.CPUTime(), nil
}

// MemoryPercent implements ProcessSampler.
func (s *ProcSampler) MemoryPercent() (float64, error) {
	stat, err := s.stat()
	if err != nil {
		return 0, err
	}

	total, err := s.totalMemory()
	if err != nil {
		return 0, err
	}

	return float64(stat.ResidentMemory()) / float64(total) * 100, nil
}

func (s *ProcSampler) stat() (procfs.ProcStat, error) {
	if s.initErr != nil {
		return procfs.ProcStat{}, fmt.Errorf("open procfs: %w", s.initErr)
	}
	p, err := s.fs.Self()
	if err != nil {
		return procfs.ProcStat{}, fmt.Errorf("read self: %w", err)
	}
	stat, err := p.Stat()
	if err != nil {
		return procfs.ProcStat{}, fmt.Errorf("read stat: %w", err)
	}
	return stat, nil
}

// totalMemory reads MemTotal once; it does not change while running.
func (s *ProcSampler) totalMemory() (uint64, error) {
	s.once.Do(func() {
		if s.initErr != nil {
			s.memErr = fmt.Errorf("open procfs: %w", s.initErr)
			return
		}
		mi, err := s.fs.Meminfo()
		if err != nil {
			s.memErr = fmt.Errorf("read meminfo: %w", err)
			return
		}
		if mi.MemTotal == nil || *mi.MemTotal == 0 {
			s.memErr = ErrMemTotalUnavailable
			return
		}
		// meminfo reports kB
		s.memTotal = *mi.MemTotal * 1024
	})
	return s.memTotal, s.memErr
}

// Snapshot is a point-in-time reading of a ProcessSampler.
// Readings that failed are reported as zero.
type Snapshot struct {
	CPUSeconds    float64
	MemoryPercent float64
}

// Sample takes a snapshot, ignoring unavailable readings.
func Sample(s ProcessSampler) Snapshot {
	var snap Snapshot
	if s == nil {
		return snap
	}
	if cpu, err := s.CPUSeconds(); err == nil {
		snap.CPUSeconds = cpu
	}
	if mem, err := s.MemoryPercent(); err == nil {
		snap.MemoryPercent = mem
	}
	return snap
}
