package stage

// Health reports whether a pipeline stage can currently do useful work.
// Detail explains the blocker when Ready is false.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy marks the named stage as ready.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy marks the named stage as blocked for the given reason.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Detail: detail}
}
