package notification

// Channel delivers a message to a set of recipients. Implementations decide
// what a recipient identifier means (device token, email address, ...).
type Channel interface {
	Send(recipients []string, title, body string) error
}
