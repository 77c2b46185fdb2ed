package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validResource() Resource {
	return Resource{
		Doi:             "10.5880/GFZ.2024.001",
		PublicationYear: 2024,
		ResourceType:    ResourceType{Value: "Dataset", General: "Dataset"},
		Titles:          []Title{{Value: "Seismic velocities of the Alpine foreland"}},
		Creators:        []Creator{{Agent: PersonAgent("Holger", "Ehrmann", "")}},
		FundingReferences: []FundingReference{{
			FunderName:           "Deutsche Forschungsgemeinschaft",
			FunderIdentifier:     "https://ror.org/018mejw64",
			FunderIdentifierType: "ROR",
			AwardNumber:          "EH 329/1-1",
			AwardURI:             "https://gepris.dfg.de/gepris/projekt/123456",
		}},
	}
}

func TestValidateAcceptsValidResource(t *testing.T) {
	r := validResource()
	assert.Nil(t, r.Validate())
}

// tests that funder identifier types outside the allow-list are rejected
func TestValidateRejectsUnknownFunderIdentifierType(t *testing.T) {
	assert := assert.New(t)
	r := validResource()
	r.FundingReferences[0].FunderIdentifierType = "FundRef"
	err := r.Validate()
	assert.NotNil(err)
	var verr *ValidationError
	assert.ErrorAs(err, &verr)
	assert.Equal("funding_references[0]", verr.Field)
}

// tests that a funding reference without an identifier needs no type
func TestValidateAcceptsFundingWithoutIdentifier(t *testing.T) {
	r := validResource()
	r.FundingReferences[0].FunderIdentifier = ""
	r.FundingReferences[0].FunderIdentifierType = ""
	assert.Nil(t, r.Validate())
}

func TestValidateRejectsMissingFunderName(t *testing.T) {
	r := validResource()
	r.FundingReferences[0].FunderName = ""
	assert.NotNil(t, r.Validate())
}

// tests that award URIs must be absolute URLs
func TestValidateRejectsBadAwardURI(t *testing.T) {
	assert := assert.New(t)
	r := validResource()
	r.FundingReferences[0].AwardURI = "gepris.dfg.de/123456"
	assert.NotNil(r.Validate())
	r.FundingReferences[0].AwardURI = "://nope"
	assert.NotNil(r.Validate())
}

func TestValidateRejectsUnknownRelationType(t *testing.T) {
	r := validResource()
	r.RelatedIdentifiers = []RelatedIdentifier{{
		Identifier:     "10.5880/GFZ.2020.007",
		IdentifierType: "DOI",
		RelationType:   "IsBestFriendsWith",
	}}
	assert.NotNil(t, r.Validate())
}

func TestValidateRejectsUnknownContributorType(t *testing.T) {
	r := validResource()
	r.Contributors = []Contributor{{
		Agent: PersonAgent("Ada", "Lovelace", ""),
		Type:  "Mathematician",
	}}
	assert.NotNil(t, r.Validate())
}

func TestValidateRejectsUnknownTitleType(t *testing.T) {
	r := validResource()
	r.Titles = append(r.Titles, Title{Value: "Untertitel", Type: "Untertitel"})
	assert.NotNil(t, r.Validate())
}

func TestValidateRejectsUnknownDescriptionType(t *testing.T) {
	r := validResource()
	r.Descriptions = []Description{{Value: "Some text", Type: "Blurb"}}
	assert.NotNil(t, r.Validate())
}

func TestValidateRejectsUnknownResourceTypeGeneral(t *testing.T) {
	assert := assert.New(t)
	r := validResource()
	r.ResourceType.General = "Spreadsheet"
	err := r.Validate()
	assert.NotNil(err)
	var verr *ValidationError
	assert.ErrorAs(err, &verr)
	assert.Equal("resource_type", verr.Field)
}

func TestValidateRejectsEmptyDate(t *testing.T) {
	r := validResource()
	r.Dates = []Date{{Type: "Collected"}}
	assert.NotNil(t, r.Validate())
}
