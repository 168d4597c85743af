// Package entity defines the domain entities for the identity feature.
package entity

// ProviderIdentity is the validated identity extracted from an external
// provider bearer token. Email is lowercased and trimmed by the client;
// name fields are best-effort metadata and may be empty.
type ProviderIdentity struct {
	// ID is the provider's stable user id.
	ID string

	// Email as confirmed by the provider.
	Email string

	// EmailConfirmed mirrors the provider's email confirmation flag.
	EmailConfirmed bool

	FirstName string
	LastName  string
}

// DisplayName joins the name fields, falling back to empty when the
// provider supplied no metadata.
func (p ProviderIdentity) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}
