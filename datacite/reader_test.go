package datacite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// a canned in-memory laboratory registry
type fakeResolver map[string][2]string

func (f fakeResolver) Resolve(labId string) (name, affiliation string, ok bool) {
	entry, found := f[labId]
	if !found {
		return "", "", false
	}
	return entry[0], entry[1], true
}

const importedDocument = `<?xml version="1.0" encoding="UTF-8"?>
<resource xmlns="http://datacite.org/schema/kernel-4">
  <identifier identifierType="DOI">10.5880/GFZ.2024.001</identifier>
  <creators>
    <creator>
      <creatorName nameType="Personal">Ehrmann, Holger</creatorName>
      <givenName>Holger</givenName>
      <familyName>Ehrmann</familyName>
      <nameIdentifier nameIdentifierScheme="ORCID" schemeURI="https://orcid.org">0000-0002-1825-0097</nameIdentifier>
      <affiliation affiliationIdentifier="https://ror.org/04z8jg394">GFZ Potsdam</affiliation>
    </creator>
  </creators>
  <titles>
    <title>Seismic velocities of the Alpine foreland</title>
  </titles>
  <publisher>GFZ Data Services</publisher>
  <publicationYear>2024</publicationYear>
  <resourceType resourceTypeGeneral="Dataset">Seismic dataset</resourceType>
  <contributors>
    <contributor contributorType="HostingInstitution">
      <contributorName nameType="Organizational">Old Lab Name</contributorName>
      <nameIdentifier nameIdentifierScheme="labid">9001</nameIdentifier>
      <affiliation>Old Affiliation</affiliation>
    </contributor>
    <contributor contributorType="HostingInstitution">
      <contributorName nameType="Organizational">GFZ Data Services</contributorName>
    </contributor>
    <contributor contributorType="DataCurator">
      <contributorName>Lovelace, Ada</contributorName>
    </contributor>
  </contributors>
  <dates>
    <date dateType="Collected">2023-01-01/2023-06-30</date>
  </dates>
  <fundingReferences>
    <fundingReference>
      <funderName>Deutsche Forschungsgemeinschaft</funderName>
      <funderIdentifier funderIdentifierType="ROR">https://ror.org/018mejw64</funderIdentifier>
      <awardNumber awardURI="https://gepris.dfg.de/gepris/projekt/123456">EH 329/1-1</awardNumber>
    </fundingReference>
  </fundingReferences>
</resource>`

func TestReadDocument(t *testing.T) {
	assert := assert.New(t)
	record, err := Read([]byte(importedDocument), nil)
	assert.Nil(err)
	assert.Equal("10.5880/GFZ.2024.001", *record.Doi)
	assert.Equal(2024, *record.PublicationYear)
	assert.Nil(record.Version)
	assert.Nil(record.Language)
	assert.Equal("Dataset", record.ResourceType.General)
	assert.Equal("Seismic dataset", record.ResourceType.Value)
	assert.Len(record.Titles, 1)
	assert.Len(record.Creators, 1)

	creator := record.Creators[0]
	assert.Equal("Ehrmann, Holger", creator.Name)
	assert.Equal("https://orcid.org/0000-0002-1825-0097", creator.Identifier)
	assert.Equal("ORCID", creator.IdentifierScheme)

	assert.Len(record.Dates, 1)
	assert.Equal("2023-01-01", record.Dates[0].Start)
	assert.Equal("2023-06-30", record.Dates[0].End)

	assert.Len(record.FundingReferences, 1)
	funding := record.FundingReferences[0]
	assert.Equal("ROR", funding.FunderIdentifierType)
	assert.Equal("EH 329/1-1", funding.AwardNumber)
	assert.Equal("https://gepris.dfg.de/gepris/projekt/123456", funding.AwardURI)
}

// tests that a ROR affiliation identifier is recognized by URL prefix even
// without an explicit scheme attribute
func TestReadSniffsRorAffiliations(t *testing.T) {
	assert := assert.New(t)
	record, err := Read([]byte(importedDocument), nil)
	assert.Nil(err)
	affiliations := record.Creators[0].Affiliations
	assert.Len(affiliations, 1)
	assert.Equal("GFZ Potsdam", affiliations[0].Name)
	assert.Equal("https://ror.org/04z8jg394", affiliations[0].RorId)
}

// tests that a HostingInstitution with a labid goes to the laboratory
// bucket (enriched from the registry) while one without stays a contributor
func TestReadRoutesLaboratories(t *testing.T) {
	assert := assert.New(t)
	registry := fakeResolver{
		"9001": {"Tectonic Modelling Laboratory", "Utrecht University"},
	}
	record, err := Read([]byte(importedDocument), registry)
	assert.Nil(err)

	assert.Len(record.MslLaboratories, 1)
	lab := record.MslLaboratories[0]
	assert.Equal("9001", lab.LabId)
	assert.Equal("Tectonic Modelling Laboratory", lab.Name)
	assert.Equal("Utrecht University", lab.Affiliation)

	assert.Len(record.Contributors, 2)
	assert.Equal("HostingInstitution", record.Contributors[0].ContributorType)
	assert.Equal("GFZ Data Services", record.Contributors[0].Name)
	assert.Equal("DataCurator", record.Contributors[1].ContributorType)
}

// tests that an unknown labid keeps the XML-supplied name and affiliation
func TestReadKeepsUnknownLaboratoryValues(t *testing.T) {
	assert := assert.New(t)
	record, err := Read([]byte(importedDocument), fakeResolver{})
	assert.Nil(err)
	assert.Len(record.MslLaboratories, 1)
	assert.Equal("Old Lab Name", record.MslLaboratories[0].Name)
	assert.Equal("Old Affiliation", record.MslLaboratories[0].Affiliation)
}

// tests the publication year fallback from an Issued date
func TestReadPublicationYearFallback(t *testing.T) {
	assert := assert.New(t)
	document := `<resource>
  <titles><title>Undated record</title></titles>
  <dates>
    <date dateType="Issued">15 Feb 2021</date>
  </dates>
</resource>`
	record, err := Read([]byte(document), nil)
	assert.Nil(err)
	assert.Equal(2021, *record.PublicationYear)

	record, err = Read([]byte("<resource><titles><title>T</title></titles></resource>"), nil)
	assert.Nil(err)
	assert.Nil(record.PublicationYear)
}

// tests OAI-PMH style wrapping around the resource element
func TestReadToleratesWrapping(t *testing.T) {
	assert := assert.New(t)
	wrapped := `<?xml version="1.0"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
  <GetRecord><record><metadata>` + importedDocument[len(`<?xml version="1.0" encoding="UTF-8"?>`):] + `
  </metadata></record></GetRecord>
</OAI-PMH>`
	record, err := Read([]byte(wrapped), nil)
	assert.Nil(err)
	assert.Equal("10.5880/GFZ.2024.001", *record.Doi)
}

func TestReadRejectsMalformedXML(t *testing.T) {
	_, err := Read([]byte("<resource><titles>"), nil)
	assert.NotNil(t, err)
}

func TestReadRejectsNonDataCiteDocuments(t *testing.T) {
	_, err := Read([]byte("<html><body>not metadata</body></html>"), nil)
	assert.ErrorIs(t, err, ErrNoResource)
}

// tests that creators without any name are dropped
func TestReadDropsNamelessAgents(t *testing.T) {
	assert := assert.New(t)
	document := `<resource>
  <creators>
    <creator><creatorName></creatorName></creator>
    <creator><givenName>Ada</givenName><familyName>Lovelace</familyName></creator>
  </creators>
</resource>`
	record, err := Read([]byte(document), nil)
	assert.Nil(err)
	assert.Len(record.Creators, 1)
	assert.Equal("Lovelace, Ada", record.Creators[0].Name)
}
