package metadata

import "strings"

// Identifier schemes are normalized to canonical URL form before emission:
// a bare ORCID becomes https://orcid.org/<id>, a bare ROR id becomes
// https://ror.org/<id>. Sniffing accepts http:// spellings and surrounding
// whitespace from third-party documents.

const (
	SchemeOrcid    = "ORCID"
	OrcidSchemeURI = "https://orcid.org"
	SchemeRor      = "ROR"
	RorSchemeURI   = "https://ror.org"
)

// NormalizeOrcid returns the canonical URL form of an ORCID identifier.
func NormalizeOrcid(id string) string {
	return normalize(id, OrcidSchemeURI+"/")
}

// NormalizeRor returns the canonical URL form of a ROR identifier.
func NormalizeRor(id string) string {
	return normalize(id, RorSchemeURI+"/")
}

// IsRorURL reports whether the identifier is already a ROR URL, with or
// without an explicit scheme attribute next to it in the source document.
func IsRorURL(id string) bool {
	id = strings.TrimSpace(id)
	return strings.HasPrefix(id, "https://ror.org/") ||
		strings.HasPrefix(id, "http://ror.org/")
}

func normalize(id, prefix string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	// accept pre-formed URLs, fixing up the scheme
	if stripped, ok := strings.CutPrefix(id, "http://"); ok {
		id = "https://" + stripped
	}
	if strings.HasPrefix(id, "https://") {
		return id
	}
	return prefix + id
}
