package entity

// DownloadState describes where a download is in its lifecycle.
type DownloadState string

const (
	DownloadActive    DownloadState = "active"
	DownloadCompleted DownloadState = "completed"
	DownloadFailed    DownloadState = "failed"
	DownloadCancelled DownloadState = "cancelled"
)

// Download mirrors a host-managed download for display. The host owns the
// transfer; the client only receives progress events.
type Download struct {
	ID       string        `json:"id"`
	URL      string        `json:"url"`
	Filename string        `json:"filename"`
	Received int64         `json:"received"`
	Total    int64         `json:"total"` // -1 when unknown
	State    DownloadState `json:"state"`
}

// Progress returns completion as a fraction in [0,1], or -1 when the total
// size is unknown.
func (d *Download) Progress() float64 {
	if d.Total <= 0 {
		return -1
	}
	p := float64(d.Received) / float64(d.Total)
	if p > 1 {
		p = 1
	}
	return p
}
