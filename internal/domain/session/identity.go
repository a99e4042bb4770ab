package session

// GroupRef is the group entry carried inside a session token.
type GroupRef struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Identity is a point-in-time snapshot of a user and the groups they
// belonged to when the token was issued. It is not refreshed on its own.
type Identity struct {
	UUID   string     `json:"uuid"`
	Email  string     `json:"email"`
	Groups []GroupRef `json:"groups"`
}

func (i Identity) HasGroup(groupID string) bool {
	for _, group := range i.Groups {
		if group.UUID == groupID {
			return true
		}
	}
	return false
}

func (i Identity) GroupIDs() []string {
	ids := make([]string, 0, len(i.Groups))
	for _, group := range i.Groups {
		ids = append(ids, group.UUID)
	}
	return ids
}
