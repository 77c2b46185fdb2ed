package metadata

// An Agent identifies either a person or an institution acting as a creator
// or contributor of a resource. It is a tagged union: exactly one of Person
// and Institution is non-nil, and all rendering dispatches on the tag here
// rather than on type strings scattered through the exporters.
type Agent struct {
	Person      *Person      `json:"person,omitempty"`
	Institution *Institution `json:"institution,omitempty"`
}

// a natural person, optionally carrying an ORCID identifier
type Person struct {
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	// ORCID identifier, bare or in canonical URL form
	Identifier string `json:"identifier,omitempty"`
}

// an institution, optionally carrying a ROR identifier
type Institution struct {
	Name string `json:"name"`
	// ROR identifier, bare or in canonical URL form
	Identifier string `json:"identifier,omitempty"`
}

// name type attribute values fixed by the DataCite schema
const (
	NameTypePersonal       = "Personal"
	NameTypeOrganizational = "Organizational"
)

// PersonAgent wraps a person in an Agent.
func PersonAgent(givenName, familyName, orcid string) Agent {
	return Agent{Person: &Person{
		GivenName:  givenName,
		FamilyName: familyName,
		Identifier: orcid,
	}}
}

// InstitutionAgent wraps an institution in an Agent.
func InstitutionAgent(name, ror string) Agent {
	return Agent{Institution: &Institution{Name: name, Identifier: ror}}
}

// IsPerson reports which arm of the union is populated.
func (a Agent) IsPerson() bool {
	return a.Person != nil
}

// DisplayName renders the DataCite name for the agent: "Family, Given" when
// both parts are present, the lone part otherwise, and the full name for
// institutions.
func (a Agent) DisplayName() string {
	if a.Person != nil {
		p := a.Person
		switch {
		case p.FamilyName != "" && p.GivenName != "":
			return p.FamilyName + ", " + p.GivenName
		case p.FamilyName != "":
			return p.FamilyName
		default:
			return p.GivenName
		}
	}
	if a.Institution != nil {
		return a.Institution.Name
	}
	return ""
}

// NameType returns the DataCite nameType attribute for the agent.
func (a Agent) NameType() string {
	if a.Person != nil {
		return NameTypePersonal
	}
	return NameTypeOrganizational
}

// A name identifier ready for serialization: the canonical URL form of the
// identifier plus its scheme name and scheme URI.
type NameIdentifier struct {
	Value     string `json:"value"`
	Scheme    string `json:"scheme"`
	SchemeURI string `json:"scheme_uri"`
}

// NameIdentifier returns the agent's identifier normalized to canonical URL
// form, with ok=false when the agent has none. Persons carry ORCIDs,
// institutions carry ROR ids.
func (a Agent) NameIdentifier() (NameIdentifier, bool) {
	if a.Person != nil && a.Person.Identifier != "" {
		return NameIdentifier{
			Value:     NormalizeOrcid(a.Person.Identifier),
			Scheme:    SchemeOrcid,
			SchemeURI: OrcidSchemeURI,
		}, true
	}
	if a.Institution != nil && a.Institution.Identifier != "" {
		return NameIdentifier{
			Value:     NormalizeRor(a.Institution.Identifier),
			Scheme:    SchemeRor,
			SchemeURI: RorSchemeURI,
		}, true
	}
	return NameIdentifier{}, false
}

// a person or institution credited as a creator of a resource
type Creator struct {
	Agent        Agent         `json:"agent"`
	Affiliations []Affiliation `json:"affiliations,omitempty"`
}

// a person or institution contributing to a resource in a specific role
type Contributor struct {
	Agent Agent `json:"agent"`
	// one of the DataCite contributorType values
	Type         string        `json:"contributor_type"`
	Affiliations []Affiliation `json:"affiliations,omitempty"`
}

// an organizational affiliation of a creator or contributor
type Affiliation struct {
	Name string `json:"name"`
	// ROR identifier, bare or in canonical URL form (optional)
	RorId string `json:"ror_id,omitempty"`
}

// UnknownCreator is the placeholder emitted when a resource has no creators:
// the DataCite schema requires at least one.
func UnknownCreator() Creator {
	return Creator{Agent: InstitutionAgent("Unknown", "")}
}
