package domain

// FriendSuggestion is a friend-of-friend candidate scored by the number of
// distinct shared direct connections.
type FriendSuggestion struct {
	UserID  string
	Mutuals int
}

// PersonSuggestion is a "people you may know" candidate scored by the Pearson
// correlation between feature vectors. Only positive coefficients survive
// ranking.
type PersonSuggestion struct {
	UserID      string
	Name        string
	Correlation float64
}

// JobMatch is a job posting scored by cosine similarity between the user and
// job embeddings.
type JobMatch struct {
	JobID            string
	Title            string
	Company          string
	Location         string
	PostingURL       string
	NormalizedSalary float64
	Score            float64
}

// ConnectionCounts summarises a user's direct neighbourhood: the number of
// direct connections and the number of friend-of-friend candidates that are
// not already connected.
type ConnectionCounts struct {
	Direct           int
	FriendsOfFriends int
}
