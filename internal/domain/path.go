package domain

// ConnectionPath is a shortest path over the KNOWS graph between two users.
// UserIDs runs from source to target inclusive; Hops counts edges, so a path
// from a user to itself has one node and zero hops.
type ConnectionPath struct {
	SourceUserID string
	TargetUserID string
	UserIDs      []string
	Hops         int
}
