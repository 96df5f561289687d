package domain

// User aggregates the canonical user node data held in the graph.
//
// Features is a fixed-length vector with one coordinate per known
// skill/attribute dimension (0 when absent). Embedding places the user in the
// shared similarity space used for job matching; it is nil until the offline
// projection has run for this user.
type User struct {
	ID        string
	Name      string
	Features  []float64
	Embedding []float64
}

// UserVectors is the per-user shape returned by bulk listings: identity plus
// whichever vectors the graph currently holds for the node.
type UserVectors struct {
	ID        string
	Name      string
	Features  []float64
	Embedding []float64
}

// Job represents a job posting node. Embedding shares dimensionality and
// space with User.Embedding.
type Job struct {
	ID               string
	Title            string
	Company          string
	Location         string
	PostingURL       string
	NormalizedSalary float64
	Embedding        []float64
}
