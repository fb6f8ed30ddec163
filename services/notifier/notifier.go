package notifier

// Notifier represents a service for delivering deal alerts. Delivery
// failures are logged by callers and never abort a sweep.
type Notifier interface {
	// Notify delivers an alert with the given subject and body to the
	// recipient
	Notify(subject, body, recipient string) error

	// Close closes the notifier connection
	Close() error
}
