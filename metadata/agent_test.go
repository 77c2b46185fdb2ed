package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tests that a person with both name parts renders as "Family, Given"
func TestPersonDisplayName(t *testing.T) {
	assert := assert.New(t)
	agent := PersonAgent("Holger", "Ehrmann", "")
	assert.Equal("Ehrmann, Holger", agent.DisplayName())
	assert.Equal(NameTypePersonal, agent.NameType())
	assert.True(agent.IsPerson())
}

// tests that a lone name part stands by itself
func TestPersonDisplayNameSinglePart(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Ehrmann", PersonAgent("", "Ehrmann", "").DisplayName())
	assert.Equal("Holger", PersonAgent("Holger", "", "").DisplayName())
}

// tests institutional name rendering and name type
func TestInstitutionDisplayName(t *testing.T) {
	assert := assert.New(t)
	agent := InstitutionAgent("GFZ Helmholtz Centre for Geosciences", "")
	assert.Equal("GFZ Helmholtz Centre for Geosciences", agent.DisplayName())
	assert.Equal(NameTypeOrganizational, agent.NameType())
	assert.False(agent.IsPerson())
}

// tests that bare ORCIDs are normalized to canonical URL form
func TestPersonNameIdentifier(t *testing.T) {
	assert := assert.New(t)
	agent := PersonAgent("Josiah", "Carberry", "0000-0002-1825-0097")
	id, ok := agent.NameIdentifier()
	assert.True(ok)
	assert.Equal("https://orcid.org/0000-0002-1825-0097", id.Value)
	assert.Equal(SchemeOrcid, id.Scheme)
	assert.Equal("https://orcid.org", id.SchemeURI)
}

// tests that bare ROR ids are normalized to canonical URL form
func TestInstitutionNameIdentifier(t *testing.T) {
	assert := assert.New(t)
	agent := InstitutionAgent("GFZ Helmholtz Centre for Geosciences", "04z8jg394")
	id, ok := agent.NameIdentifier()
	assert.True(ok)
	assert.Equal("https://ror.org/04z8jg394", id.Value)
	assert.Equal(SchemeRor, id.Scheme)
	assert.Equal("https://ror.org", id.SchemeURI)
}

// tests that an institution without a ROR id carries no name identifier
func TestInstitutionWithoutIdentifier(t *testing.T) {
	assert := assert.New(t)
	agent := InstitutionAgent("Unknown", "")
	_, ok := agent.NameIdentifier()
	assert.False(ok)
}

// tests that pre-formed identifier URLs pass through (http is upgraded)
func TestNormalizeAcceptsURLForms(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("https://orcid.org/0000-0002-1825-0097",
		NormalizeOrcid("https://orcid.org/0000-0002-1825-0097"))
	assert.Equal("https://ror.org/04z8jg394",
		NormalizeRor("http://ror.org/04z8jg394"))
	assert.Equal("", NormalizeRor("  "))
}

// tests ROR URL sniffing with and without the https scheme
func TestIsRorURL(t *testing.T) {
	assert := assert.New(t)
	assert.True(IsRorURL("https://ror.org/04z8jg394"))
	assert.True(IsRorURL(" http://ror.org/04z8jg394"))
	assert.False(IsRorURL("04z8jg394"))
	assert.False(IsRorURL("https://orcid.org/0000-0002-1825-0097"))
}

// tests the main-title policy: first untyped title by stored order wins
func TestMainTitle(t *testing.T) {
	assert := assert.New(t)
	r := Resource{Titles: []Title{
		{Value: "Translated", Type: "TranslatedTitle"},
		{Value: "Main"},
		{Value: "Also untyped"},
	}}
	assert.Equal("Main", r.MainTitle())

	empty := Resource{}
	assert.Equal("", empty.MainTitle())
}

// tests date range collapsing
func TestDateValue(t *testing.T) {
	assert := assert.New(t)
	d := Date{Type: "Collected", Start: "2024-01-01", End: "2024-12-31"}
	assert.Equal("2024-01-01/2024-12-31", d.Value())
	lone := Date{Type: "Created", Start: "2023-06-15"}
	assert.Equal("2023-06-15", lone.Value())
}
