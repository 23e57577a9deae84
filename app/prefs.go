package app

const (
	// KeyLoadItemLimit is the per-request fetch count.
	KeyLoadItemLimit = "load_item_limit"
	// KeyDatabaseItemLimit caps how many statuses are cached per timeline.
	KeyDatabaseItemLimit = "database_item_limit"

	DefaultLoadItemLimit     = 20
	DefaultDatabaseItemLimit = 100
)

// Preferences is a key-value store of user tunables.
type Preferences interface {
	Int(key string, def int) int
}
