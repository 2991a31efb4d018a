package domain

// Identity is the actor descriptor supplied by the external identity
// collaborator. Only the admin-concurrency guard consumes it, and only on
// the start path.
type Identity struct {
	ActorID    string
	Privileged bool
}
