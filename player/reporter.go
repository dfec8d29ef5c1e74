package player

// Snapshot is a progress report handed to the caller.
type Snapshot struct {
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
}

// Valid reports whether both values are positive.
func (s Snapshot) Valid() bool {
	return s.Time > 0 && s.Duration > 0
}

// DefaultReportInterval is the number of active seconds between reports.
const DefaultReportInterval = 5

// Reporter counts seconds of active playback and emits a snapshot every interval.
type Reporter struct {
	interval int
	ticks    int
	emit     func(Snapshot)
	flushed  bool
}

// NewReporter returns a reporter calling emit. A nil emit discards reports.
func NewReporter(interval int, emit func(Snapshot)) *Reporter {
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	if emit == nil {
		emit = func(Snapshot) {}
	}
	return &Reporter{interval: interval, emit: emit}
}

// Tick accounts for one second. Inactive seconds are not counted.
func (r *Reporter) Tick(active bool, snap Snapshot, ok bool) {
	if !active || r.flushed {
		return
	}

	r.ticks++
	if r.ticks%r.interval == 0 && ok {
		r.emit(snap)
	}
}

// Flush emits the final snapshot. Later calls do nothing.
func (r *Reporter) Flush(snap Snapshot, ok bool) {
	if r.flushed {
		return
	}
	r.flushed = true
	if ok {
		r.emit(snap)
	}
}
