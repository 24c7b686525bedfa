// Package policy holds the pure authorization decisions for the blog:
// who may create, edit, or delete a post and who may change a profile.
// It knows nothing about storage or HTTP.
package policy

// Actor is the authenticated identity behind a request.
// The zero Actor (ID 0) represents an anonymous caller.
type Actor struct {
	ID        int64
	Username  string
	Active    bool
	Superuser bool
}

// Authenticated reports whether the actor carries a real identity.
func (a Actor) Authenticated() bool {
	return a.ID != 0
}

// CanRead reports whether the actor may read posts. Posts are public,
// so this holds for everyone including anonymous callers.
func CanRead(Actor) bool {
	return true
}

// CanCreate reports whether the actor may create a post. The created
// post's author is always the actor, never a client-supplied id.
func CanCreate(actor Actor) bool {
	return actor.Authenticated() && actor.Active
}

// CanModify reports whether the actor may edit the post owned by authorID.
// Ownership is the sole basis for mutation rights.
func CanModify(actor Actor, authorID int64) bool {
	return actor.Authenticated() && actor.Active && actor.ID == authorID
}

// CanDelete follows the same rule as CanModify.
func CanDelete(actor Actor, authorID int64) bool {
	return CanModify(actor, authorID)
}

// CanUpdateProfile reports whether the actor may update the profile of
// the user identified by targetID. Only the owner may.
func CanUpdateProfile(actor Actor, targetID int64) bool {
	return actor.Authenticated() && actor.Active && actor.ID == targetID
}
