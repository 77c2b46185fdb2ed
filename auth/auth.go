package auth

// A record containing information about a registered user of the metadata
// exchange service. Curators edit and export resources; the access file
// decides who gets in.
type User struct {
	// name (human-readable and display-friendly)
	Name string
	// email address
	Email string
	// ORCID identifier associated with this user
	Orcid string
	// organization with which this user is affiliated
	Organization string
}
