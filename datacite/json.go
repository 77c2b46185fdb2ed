package datacite

import (
	"encoding/json"

	"github.com/gfz-metadata/mex/metadata"
)

// The JSON export mirrors the document shape of the DataCite REST API: a
// JSON:API document with a "dois" data object whose attributes carry the
// same fields as the XML kernel. Collections with no members omit their key
// entirely; the doi key is always present and null when the resource has no
// DOI (the structural counterpart of the always-present XML identifier
// element).

type Document struct {
	Data DocumentData `json:"data"`
}

type DocumentData struct {
	Type       string     `json:"type"`
	Attributes Attributes `json:"attributes"`
}

type Attributes struct {
	Doi                *string                 `json:"doi"`
	Creators           []AgentAttributes       `json:"creators,omitempty"`
	Titles             []TitleAttributes       `json:"titles,omitempty"`
	Publisher          PublisherAttributes     `json:"publisher"`
	PublicationYear    int                     `json:"publicationYear"`
	Types              TypeAttributes          `json:"types"`
	Subjects           []SubjectAttributes     `json:"subjects,omitempty"`
	Contributors       []AgentAttributes       `json:"contributors,omitempty"`
	Dates              []DateAttributes        `json:"dates,omitempty"`
	Language           string                  `json:"language,omitempty"`
	RelatedIdentifiers []RelatedAttributes     `json:"relatedIdentifiers,omitempty"`
	Version            string                  `json:"version,omitempty"`
	RightsList         []RightsAttributes      `json:"rightsList,omitempty"`
	Descriptions       []DescriptionAttributes `json:"descriptions,omitempty"`
	GeoLocations       []GeoLocationAttributes `json:"geoLocations,omitempty"`
	FundingReferences  []FundingAttributes     `json:"fundingReferences,omitempty"`
	SchemaVersion      string                  `json:"schemaVersion"`
}

type AgentAttributes struct {
	Name            string                     `json:"name"`
	NameType        string                     `json:"nameType"`
	GivenName       string                     `json:"givenName,omitempty"`
	FamilyName      string                     `json:"familyName,omitempty"`
	ContributorType string                     `json:"contributorType,omitempty"`
	NameIdentifiers []NameIdentifierAttributes `json:"nameIdentifiers,omitempty"`
	Affiliation     []AffiliationAttributes    `json:"affiliation,omitempty"`
}

type NameIdentifierAttributes struct {
	NameIdentifier       string `json:"nameIdentifier"`
	NameIdentifierScheme string `json:"nameIdentifierScheme"`
	SchemeUri            string `json:"schemeUri"`
}

type AffiliationAttributes struct {
	Name                        string `json:"name"`
	AffiliationIdentifier       string `json:"affiliationIdentifier,omitempty"`
	AffiliationIdentifierScheme string `json:"affiliationIdentifierScheme,omitempty"`
	SchemeUri                   string `json:"schemeUri,omitempty"`
}

type TitleAttributes struct {
	Title     string `json:"title"`
	TitleType string `json:"titleType,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

type PublisherAttributes struct {
	Name                      string `json:"name"`
	PublisherIdentifier       string `json:"publisherIdentifier,omitempty"`
	PublisherIdentifierScheme string `json:"publisherIdentifierScheme,omitempty"`
	SchemeUri                 string `json:"schemeUri,omitempty"`
}

type TypeAttributes struct {
	ResourceType        string `json:"resourceType,omitempty"`
	ResourceTypeGeneral string `json:"resourceTypeGeneral,omitempty"`
}

type SubjectAttributes struct {
	Subject       string `json:"subject"`
	SubjectScheme string `json:"subjectScheme,omitempty"`
	SchemeUri     string `json:"schemeUri,omitempty"`
	ValueUri      string `json:"valueUri,omitempty"`
}

type DateAttributes struct {
	Date            string `json:"date"`
	DateType        string `json:"dateType"`
	DateInformation string `json:"dateInformation,omitempty"`
}

type RelatedAttributes struct {
	RelatedIdentifier     string `json:"relatedIdentifier"`
	RelatedIdentifierType string `json:"relatedIdentifierType"`
	RelationType          string `json:"relationType"`
}

type RightsAttributes struct {
	Rights                 string `json:"rights"`
	RightsUri              string `json:"rightsUri,omitempty"`
	RightsIdentifier       string `json:"rightsIdentifier,omitempty"`
	RightsIdentifierScheme string `json:"rightsIdentifierScheme,omitempty"`
	SchemeUri              string `json:"schemeUri,omitempty"`
}

type DescriptionAttributes struct {
	Description     string `json:"description"`
	DescriptionType string `json:"descriptionType"`
	Lang            string `json:"lang,omitempty"`
}

type GeoLocationAttributes struct {
	GeoLocationPlace   string                   `json:"geoLocationPlace,omitempty"`
	GeoLocationPoint   *GeoPointAttributes      `json:"geoLocationPoint,omitempty"`
	GeoLocationBox     *GeoBoxAttributes        `json:"geoLocationBox,omitempty"`
	GeoLocationPolygon []PolygonPointAttributes `json:"geoLocationPolygon,omitempty"`
}

type GeoPointAttributes struct {
	PointLongitude float64 `json:"pointLongitude"`
	PointLatitude  float64 `json:"pointLatitude"`
}

type GeoBoxAttributes struct {
	WestBoundLongitude float64 `json:"westBoundLongitude"`
	EastBoundLongitude float64 `json:"eastBoundLongitude"`
	SouthBoundLatitude float64 `json:"southBoundLatitude"`
	NorthBoundLatitude float64 `json:"northBoundLatitude"`
}

type PolygonPointAttributes struct {
	PolygonPoint GeoPointAttributes `json:"polygonPoint"`
}

type FundingAttributes struct {
	FunderName           string `json:"funderName"`
	FunderIdentifier     string `json:"funderIdentifier,omitempty"`
	FunderIdentifierType string `json:"funderIdentifierType,omitempty"`
	AwardNumber          string `json:"awardNumber,omitempty"`
	AwardUri             string `json:"awardUri,omitempty"`
	AwardTitle           string `json:"awardTitle,omitempty"`
}

// MarshalJSON serializes a resource into an indented JSON:API document with
// the same field mapping and default-substitution rules as the XML export.
func MarshalJSON(r *metadata.Resource, defaults Defaults) ([]byte, error) {
	return json.MarshalIndent(NewDocument(r, defaults), "", "  ")
}

// NewDocument maps a resource onto the JSON:API document structure.
func NewDocument(r *metadata.Resource, defaults Defaults) *Document {
	publisher := defaults.publisher(r)
	attrs := Attributes{
		Publisher:       jsonPublisher(publisher),
		PublicationYear: r.PublicationYear,
		Types: TypeAttributes{
			ResourceType:        r.ResourceType.Value,
			ResourceTypeGeneral: r.ResourceType.General,
		},
		Language:      r.Language,
		Version:       r.Version,
		SchemaVersion: Namespace,
	}

	if r.Doi != "" {
		doi := r.Doi
		attrs.Doi = &doi
	}

	for _, c := range defaults.creators(r) {
		attrs.Creators = append(attrs.Creators, jsonAgent(c.Agent, "", c.Affiliations))
	}

	for _, t := range r.Titles {
		attrs.Titles = append(attrs.Titles, TitleAttributes{
			Title:     t.Value,
			TitleType: t.Type,
			Lang:      t.Language,
		})
	}

	for _, c := range r.Contributors {
		attrs.Contributors = append(attrs.Contributors, jsonAgent(c.Agent, c.Type, c.Affiliations))
	}

	for _, s := range r.Subjects {
		attrs.Subjects = append(attrs.Subjects, SubjectAttributes{
			Subject:       s.Value,
			SubjectScheme: s.Scheme,
			SchemeUri:     s.SchemeURI,
			ValueUri:      s.ValueURI,
		})
	}

	for _, d := range r.Dates {
		attrs.Dates = append(attrs.Dates, DateAttributes{
			Date:            d.Value(),
			DateType:        d.Type,
			DateInformation: d.Information,
		})
	}

	for _, rel := range r.RelatedIdentifiers {
		attrs.RelatedIdentifiers = append(attrs.RelatedIdentifiers, RelatedAttributes{
			RelatedIdentifier:     rel.Identifier,
			RelatedIdentifierType: rel.IdentifierType,
			RelationType:          rel.RelationType,
		})
	}

	for _, rights := range r.Rights {
		attrs.RightsList = append(attrs.RightsList, RightsAttributes{
			Rights:                 rights.Name,
			RightsUri:              rights.URI,
			RightsIdentifier:       rights.Identifier,
			RightsIdentifierScheme: rights.IdentifierScheme,
			SchemeUri:              rights.SchemeURI,
		})
	}

	for _, d := range r.Descriptions {
		attrs.Descriptions = append(attrs.Descriptions, DescriptionAttributes{
			Description:     d.Value,
			DescriptionType: d.Type,
			Lang:            d.Language,
		})
	}

	for _, g := range r.GeoLocations {
		attrs.GeoLocations = append(attrs.GeoLocations, jsonGeoLocation(g))
	}

	for _, f := range r.FundingReferences {
		attrs.FundingReferences = append(attrs.FundingReferences, FundingAttributes{
			FunderName:           f.FunderName,
			FunderIdentifier:     f.FunderIdentifier,
			FunderIdentifierType: f.FunderIdentifierType,
			AwardNumber:          f.AwardNumber,
			AwardUri:             f.AwardURI,
			AwardTitle:           f.AwardTitle,
		})
	}

	return &Document{Data: DocumentData{Type: "dois", Attributes: attrs}}
}

func jsonPublisher(p metadata.Publisher) PublisherAttributes {
	pub := PublisherAttributes{Name: p.Name}
	if p.RorId != "" {
		pub.PublisherIdentifier = metadata.NormalizeRor(p.RorId)
		pub.PublisherIdentifierScheme = metadata.SchemeRor
		pub.SchemeUri = metadata.RorSchemeURI
	}
	return pub
}

func jsonAgent(agent metadata.Agent, contributorType string,
	affiliations []metadata.Affiliation) AgentAttributes {

	out := AgentAttributes{
		Name:            agent.DisplayName(),
		NameType:        agent.NameType(),
		ContributorType: contributorType,
	}
	// givenName/familyName keys are omitted independently when a part is
	// missing rather than emitted empty
	if agent.IsPerson() {
		out.GivenName = agent.Person.GivenName
		out.FamilyName = agent.Person.FamilyName
	}
	if id, ok := agent.NameIdentifier(); ok {
		out.NameIdentifiers = []NameIdentifierAttributes{{
			NameIdentifier:       id.Value,
			NameIdentifierScheme: id.Scheme,
			SchemeUri:            id.SchemeURI,
		}}
	}
	for _, a := range affiliations {
		aff := AffiliationAttributes{Name: a.Name}
		if a.RorId != "" {
			aff.AffiliationIdentifier = metadata.NormalizeRor(a.RorId)
			aff.AffiliationIdentifierScheme = metadata.SchemeRor
			aff.SchemeUri = metadata.RorSchemeURI
		}
		out.Affiliation = append(out.Affiliation, aff)
	}
	return out
}

func jsonGeoLocation(g metadata.GeoLocation) GeoLocationAttributes {
	out := GeoLocationAttributes{GeoLocationPlace: g.Place}
	if g.Point != nil {
		out.GeoLocationPoint = &GeoPointAttributes{
			PointLongitude: g.Point.Longitude,
			PointLatitude:  g.Point.Latitude,
		}
	}
	if g.Box != nil {
		out.GeoLocationBox = &GeoBoxAttributes{
			WestBoundLongitude: g.Box.West,
			EastBoundLongitude: g.Box.East,
			SouthBoundLatitude: g.Box.South,
			NorthBoundLatitude: g.Box.North,
		}
	}
	for _, p := range closePolygon(g.Polygon) {
		out.GeoLocationPolygon = append(out.GeoLocationPolygon, PolygonPointAttributes{
			PolygonPoint: GeoPointAttributes{
				PointLongitude: p.Longitude,
				PointLatitude:  p.Latitude,
			},
		})
	}
	return out
}
