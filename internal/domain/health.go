package domain

// Health is the platform reachability probe result.
type Health struct {
	OK      bool
	Shop    string
	Message string
}
