package download

import (
	"sync/atomic"
	"time"
)

// Status holds the shared transfer counters. The transfer loop is the
// only writer; the progress reporter goroutine polls it. Counters are
// atomics so the cross-goroutine reads are well defined without a
// lock; a read being one tick stale is acceptable for display.
type Status struct {
	downloaded   atomic.Int64
	timeFinished atomic.Int64 // unix nanos, 0 until finished

	// Written once in Started, before the reporter goroutine exists.
	totalSize   int64 // -1 when unknown
	resumedFrom int64
	timeStarted time.Time
}

func NewStatus() *Status {
	return &Status{totalSize: -1}
}

// Started records the start of the transfer. totalSize < 0 means the
// total is unknown. Calling it twice is a programmer error.
func (s *Status) Started(resumedFrom, totalSize int64) {
	if !s.timeStarted.IsZero() {
		panic("download: status started twice")
	}
	s.totalSize = totalSize
	s.resumedFrom = resumedFrom
	s.downloaded.Store(resumedFrom)
	s.timeStarted = time.Now()
}

// ChunkDownloaded advances the downloaded byte count.
func (s *Status) ChunkDownloaded(size int64) {
	if s.HasFinished() {
		panic("download: chunk recorded after finish")
	}
	s.downloaded.Add(size)
}

func (s *Status) Downloaded() int64 {
	return s.downloaded.Load()
}

// TotalSize reports the expected total and whether it is known.
func (s *Status) TotalSize() (int64, bool) {
	return s.totalSize, s.totalSize >= 0
}

func (s *Status) ResumedFrom() int64 {
	return s.resumedFrom
}

func (s *Status) TimeStarted() time.Time {
	return s.timeStarted
}

func (s *Status) HasFinished() bool {
	return s.timeFinished.Load() != 0
}

// Finished records the finish timestamp. It must follow Started and
// may run at most once.
func (s *Status) Finished() {
	if s.timeStarted.IsZero() {
		panic("download: status finished before start")
	}
	if !s.timeFinished.CompareAndSwap(0, time.Now().UnixNano()) {
		panic("download: status finished twice")
	}
}

// TimeTaken is the wall time between start and finish.
func (s *Status) TimeTaken() time.Duration {
	finished := s.timeFinished.Load()
	if finished == 0 {
		return 0
	}
	return time.Unix(0, finished).Sub(s.timeStarted)
}
