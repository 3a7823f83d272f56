package entity

// Owned is any resource that belongs to exactly one user. Ad and Comment
// implement it; the mutation paths of both share the same guard.
type Owned interface {
	OwnerID() string
}

// RequireOwner fails with ErrForbidden when actorID does not own the
// resource. Existence is not hidden from non-owners, so a wrong actor on an
// existing resource is a Forbidden, never a NotFound.
func RequireOwner(resource Owned, actorID string) error {
	if resource.OwnerID() != actorID {
		return ErrForbidden
	}
	return nil
}
