package types

// Navigator abstracts the host's navigation primitive. The engine only
// issues navigation requests and reads the current location; it never owns
// history.
type Navigator interface {
	// Navigate moves the current location to path. When replace is true
	// the current history entry is replaced instead of pushed.
	Navigate(path string, replace bool)

	// Location returns the current navigation position.
	Location() Location
}
