package domain

// ApplicationData is the single session-scoped record for one wizard
// traversal: the in-progress appeal plus the navigation permission ledger.
// It is created empty on first touch of the session and expired by the
// session store, never destroyed explicitly.
type ApplicationData struct {
	Appeal     Appeal     `json:"appeal"`
	Navigation Navigation `json:"navigation"`

	// Sealed carries the ciphertext envelope when the encryption store
	// middleware is active. A sealed record has no other fields populated.
	Sealed string `json:"__sealed__,omitempty"`
}

// NewApplicationData creates an empty record.
func NewApplicationData() *ApplicationData {
	return &ApplicationData{}
}

// Clone returns a deep copy, isolating store writes from the live session.
func (d *ApplicationData) Clone() *ApplicationData {
	if d == nil {
		return nil
	}
	out := *d
	out.Appeal = d.Appeal.Clone()
	if d.Navigation.Permissions != nil {
		out.Navigation.Permissions = make([]string, len(d.Navigation.Permissions))
		copy(out.Navigation.Permissions, d.Navigation.Permissions)
	}
	return &out
}

// Navigation is the page-visitation permission ledger. Permissions holds the
// step URIs the user has legitimately reached, in visitation order, with no
// duplicates.
type Navigation struct {
	Permissions []string `json:"permissions,omitempty"`
}

// Permit appends uri to the ledger unless it is already present.
func (n *Navigation) Permit(uri string) {
	if n.Permitted(uri) {
		return
	}
	n.Permissions = append(n.Permissions, uri)
}

// Permitted reports whether uri is in the ledger.
func (n *Navigation) Permitted(uri string) bool {
	for _, p := range n.Permissions {
		if p == uri {
			return true
		}
	}
	return false
}

// Last returns the most recently permitted URI, or "" for an empty ledger.
func (n *Navigation) Last() string {
	if len(n.Permissions) == 0 {
		return ""
	}
	return n.Permissions[len(n.Permissions)-1]
}
