package datacite

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gfz-metadata/mex/metadata"
)

// tests the JSON:API document envelope and field mapping
func TestMarshalJSONDocument(t *testing.T) {
	assert := assert.New(t)
	data, err := MarshalJSON(sampleResource(), testDefaults)
	assert.Nil(err)

	var doc map[string]any
	assert.Nil(json.Unmarshal(data, &doc))
	docData := doc["data"].(map[string]any)
	assert.Equal("dois", docData["type"])

	attrs := docData["attributes"].(map[string]any)
	assert.Equal("10.5880/GFZ.2024.001", attrs["doi"])
	assert.Equal(float64(2024), attrs["publicationYear"])
	assert.Equal(Namespace, attrs["schemaVersion"])

	types := attrs["types"].(map[string]any)
	assert.Equal("Dataset", types["resourceTypeGeneral"])

	creators := attrs["creators"].([]any)
	assert.Len(creators, 2)
	first := creators[0].(map[string]any)
	assert.Equal("Ehrmann, Holger", first["name"])
	assert.Equal("Personal", first["nameType"])
	assert.Equal("Holger", first["givenName"])

	second := creators[1].(map[string]any)
	assert.Equal("Organizational", second["nameType"])
	_, hasGiven := second["givenName"]
	assert.False(hasGiven)

	dates := attrs["dates"].([]any)
	assert.Equal("2023-01-01/2023-06-30", dates[0].(map[string]any)["date"])
}

// tests that the doi key is present and null when the resource has no DOI
func TestMarshalJSONNullDoi(t *testing.T) {
	assert := assert.New(t)
	r := sampleResource()
	r.Doi = ""
	data, err := MarshalJSON(r, testDefaults)
	assert.Nil(err)

	var doc map[string]any
	assert.Nil(json.Unmarshal(data, &doc))
	attrs := doc["data"].(map[string]any)["attributes"].(map[string]any)
	value, present := attrs["doi"]
	assert.True(present)
	assert.Nil(value)
}

// tests that empty collections omit their keys entirely
func TestMarshalJSONOmitsEmptyCollections(t *testing.T) {
	assert := assert.New(t)
	r := &metadata.Resource{
		PublicationYear: 2024,
		ResourceType:    metadata.ResourceType{Value: "Dataset", General: "Dataset"},
		Titles:          []metadata.Title{{Value: "Sparse record"}},
	}
	data, err := MarshalJSON(r, testDefaults)
	assert.Nil(err)

	var doc map[string]any
	assert.Nil(json.Unmarshal(data, &doc))
	attrs := doc["data"].(map[string]any)["attributes"].(map[string]any)
	for _, key := range []string{"subjects", "contributors", "dates", "rightsList",
		"descriptions", "geoLocations", "fundingReferences", "relatedIdentifiers",
		"language", "version"} {
		_, present := attrs[key]
		assert.False(present, "%s should be omitted", key)
	}

	// placeholder creator mirrors the XML export
	creators := attrs["creators"].([]any)
	assert.Len(creators, 1)
	assert.Equal("Unknown", creators[0].(map[string]any)["name"])

	publisher := attrs["publisher"].(map[string]any)
	assert.Equal("GFZ Helmholtz Centre for Geosciences", publisher["name"])
	assert.Equal("https://ror.org/04z8jg394", publisher["publisherIdentifier"])
}

// tests that a person with only a family name omits givenName independently
func TestMarshalJSONPartialName(t *testing.T) {
	assert := assert.New(t)
	r := sampleResource()
	r.Creators = []metadata.Creator{{Agent: metadata.PersonAgent("", "Ehrmann", "")}}
	data, err := MarshalJSON(r, testDefaults)
	assert.Nil(err)

	var doc map[string]any
	assert.Nil(json.Unmarshal(data, &doc))
	attrs := doc["data"].(map[string]any)["attributes"].(map[string]any)
	creator := attrs["creators"].([]any)[0].(map[string]any)
	assert.Equal("Ehrmann", creator["name"])
	assert.Equal("Ehrmann", creator["familyName"])
	_, present := creator["givenName"]
	assert.False(present)
}

func TestMarshalJSONGeoLocations(t *testing.T) {
	assert := assert.New(t)
	data, err := MarshalJSON(sampleResource(), testDefaults)
	assert.Nil(err)

	var doc map[string]any
	assert.Nil(json.Unmarshal(data, &doc))
	attrs := doc["data"].(map[string]any)["attributes"].(map[string]any)
	geo := attrs["geoLocations"].([]any)[0].(map[string]any)
	assert.Equal("Alpine foreland", geo["geoLocationPlace"])
	point := geo["geoLocationPoint"].(map[string]any)
	assert.Equal(13.5, point["pointLongitude"])
	box := geo["geoLocationBox"].(map[string]any)
	assert.Equal(47.25, box["southBoundLatitude"])
}
