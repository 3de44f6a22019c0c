package domain

import "time"

type Workspace struct {
	ID        string
	Name      string
	OwnerID   string
	MemberIDs []string
	CreatedAt time.Time
}

func (w Workspace) IsOwner(userID string) bool {
	return w.OwnerID == userID
}

// HasAccess reports whether userID may read the workspace.
func (w Workspace) HasAccess(userID string) bool {
	if w.IsOwner(userID) {
		return true
	}
	for _, member := range w.MemberIDs {
		if member == userID {
			return true
		}
	}
	return false
}
