package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ChangeType represents how a commit changed a file.
	ChangeType string

	// ActivityLevel represents how recently an author committed.
	ActivityLevel string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All file change types supported.
const (
	AddedChange    ChangeType = "added"
	ModifiedChange ChangeType = "modified"
	RemovedChange  ChangeType = "removed"
	RenamedChange  ChangeType = "renamed"
)

// All activity levels supported.
const (
	ActiveLevel  ActivityLevel = "active"
	QuietLevel   ActivityLevel = "quiet"
	DormantLevel ActivityLevel = "dormant"
	UnknownLevel ActivityLevel = "unknown"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// UnknownAuthorKey is the sentinel aggregation key for commits with no
// resolvable author identity. Such commits are counted, never dropped.
const UnknownAuthorKey = "unknown"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
