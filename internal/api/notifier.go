package api

// SignalKind classifies a session-level error.
type SignalKind string

const (
	// SignalExpired means the session could not be refreshed and the user
	// must log in again.
	SignalExpired SignalKind = "expired"

	// SignalForbidden means the server denied access to a resource.
	SignalForbidden SignalKind = "forbidden"
)

// Signal is a session-level error fanned out to the registered notifier,
// in addition to the error returned to the caller. Delivered at most once
// per triggering failure.
type Signal struct {
	Kind    SignalKind
	Message string
}

// Notifier receives session-level error signals. The client holds a single
// notifier slot; registering a new one replaces the old one. A typical
// implementation redirects to the login screen on SignalExpired and shows
// a permission warning on SignalForbidden.
type Notifier interface {
	Notify(Signal)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Signal)

// Notify calls f(signal).
func (f NotifierFunc) Notify(signal Signal) {
	f(signal)
}
