package auth

import "context"

// Subject identifies who is asking for a resource: the admin, or a client
// who just finished enrolling and holds the number of their contract.
// The zero Subject is anonymous.
type Subject struct {
	Admin    bool
	Contract string
}

// SubjectFrom builds the subject of a request. contract is the number
// remembered by the client's wizard session, if any.
func SubjectFrom(ctx context.Context, contract string) Subject {
	return Subject{Admin: IsAdmin(ctx), Contract: contract}
}
