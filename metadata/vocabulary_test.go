package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tests that every relation type's opposite is itself a known relation type
// whose opposite points back (IsIdenticalTo is its own opposite)
func TestRelationTypeOppositesAreBidirectional(t *testing.T) {
	assert := assert.New(t)
	for relType, opposite := range relationTypeOpposites {
		roundTrip, ok := OppositeRelationType(opposite)
		assert.True(ok, "opposite of %s is not a known relation type", relType)
		assert.Equal(relType, roundTrip,
			"opposite of %s does not point back", relType)
	}
	opp, ok := OppositeRelationType("Cites")
	assert.True(ok)
	assert.Equal("IsCitedBy", opp)
	opp, ok = OppositeRelationType("IsIdenticalTo")
	assert.True(ok)
	assert.Equal("IsIdenticalTo", opp)
}

// tests that IsPublishedIn is a valid relation type even though the schema
// gives it no inverse
func TestUnpairedRelationType(t *testing.T) {
	assert := assert.New(t)
	assert.True(KnownRelationType("IsPublishedIn"))
	_, ok := OppositeRelationType("IsPublishedIn")
	assert.False(ok)
}

func TestUnknownRelationType(t *testing.T) {
	assert := assert.New(t)
	assert.False(KnownRelationType("IsBestFriendsWith"))
	_, ok := OppositeRelationType("IsBestFriendsWith")
	assert.False(ok)
}

// tests the funder identifier type allow-list
func TestFunderIdentifierTypes(t *testing.T) {
	assert := assert.New(t)
	for _, idType := range []string{"ROR", "Crossref Funder ID", "ISNI", "GRID", "Other"} {
		assert.True(KnownFunderIdentifierType(idType), "%s not accepted", idType)
	}
	assert.False(KnownFunderIdentifierType("FundRef"))
	assert.False(KnownFunderIdentifierType("ror"))
}

func TestContributorTypes(t *testing.T) {
	assert := assert.New(t)
	assert.True(KnownContributorType("HostingInstitution"))
	assert.True(KnownContributorType("DataCurator"))
	assert.False(KnownContributorType("Janitor"))
}

func TestDateTypes(t *testing.T) {
	assert := assert.New(t)
	assert.True(KnownDateType("Collected"))
	assert.True(KnownDateType("Issued"))
	assert.False(KnownDateType("Birthday"))
}

func TestTitleTypes(t *testing.T) {
	assert := assert.New(t)
	assert.True(KnownTitleType("TranslatedTitle"))
	assert.False(KnownTitleType(""))
	assert.False(KnownTitleType("MainTitle"))
}

func TestDescriptionTypes(t *testing.T) {
	assert := assert.New(t)
	assert.True(KnownDescriptionType("Abstract"))
	assert.True(KnownDescriptionType("Methods"))
	assert.False(KnownDescriptionType("Blurb"))
}

func TestResourceTypesGeneral(t *testing.T) {
	assert := assert.New(t)
	assert.True(KnownResourceTypeGeneral("Dataset"))
	assert.True(KnownResourceTypeGeneral("Instrument"))
	assert.False(KnownResourceTypeGeneral("Spreadsheet"))
}
