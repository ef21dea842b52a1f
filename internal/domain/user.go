// Package domain contains entities without logic, just meta-data
package domain

// Identity is what the identity verifier vouches for a privileged joiner.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// DisplayName prefers the human name and falls back to the id.
func (i *Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}
