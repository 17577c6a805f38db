package store

import (
	"sync"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

// DownloadsStore mirrors host-managed downloads for display. It is fed
// exclusively by pushed events; there is no fetch path.
type DownloadsStore struct {
	mu        sync.RWMutex
	downloads map[string]*entity.Download
	order     []string
}

// NewDownloadsStore creates an empty downloads store.
func NewDownloadsStore() *DownloadsStore {
	return &DownloadsStore{downloads: make(map[string]*entity.Download)}
}

// ApplyStarted records a new download, newest first in display order.
func (s *DownloadsStore) ApplyStarted(d entity.Download) {
	d.State = entity.DownloadActive
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.downloads[d.ID]; !ok {
		s.order = append([]string{d.ID}, s.order...)
	}
	s.downloads[d.ID] = &d
}

// ApplyProgress updates byte counts for an active download. Unknown ids
// are ignored.
func (s *DownloadsStore) ApplyProgress(id string, received, total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.downloads[id]; ok {
		d.Received = received
		d.Total = total
	}
}

// ApplyDone moves a download to its terminal state.
func (s *DownloadsStore) ApplyDone(id string, state entity.DownloadState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.downloads[id]; ok {
		d.State = state
		if state == entity.DownloadCompleted && d.Total > 0 {
			d.Received = d.Total
		}
	}
}

// Downloads returns a snapshot in display order.
func (s *DownloadsStore) Downloads() []entity.Download {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Download, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.downloads[id])
	}
	return out
}

// Active returns only in-flight downloads.
func (s *DownloadsStore) Active() []entity.Download {
	var out []entity.Download
	for _, d := range s.Downloads() {
		if d.State == entity.DownloadActive {
			out = append(out, d)
		}
	}
	return out
}

// ClearFinished drops completed, failed, and cancelled downloads.
func (s *DownloadsStore) ClearFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.order[:0]
	for _, id := range s.order {
		if s.downloads[id].State == entity.DownloadActive {
			kept = append(kept, id)
		} else {
			delete(s.downloads, id)
		}
	}
	s.order = kept
}
