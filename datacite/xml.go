package datacite

import (
	"encoding/xml"

	"github.com/gfz-metadata/mex/metadata"
)

// XML types for DataCite marshaling. Required sections (identifier,
// creators, titles, publisher, publicationYear, resourceType) are value
// fields that always serialize; optional sections use nested-element slices
// so an empty collection produces no container element at all.

type XMLResource struct {
	XMLName            xml.Name               `xml:"resource"`
	Xmlns              string                 `xml:"xmlns,attr"`
	XmlnsXsi           string                 `xml:"xmlns:xsi,attr"`
	XsiSchemaLocation  string                 `xml:"xsi:schemaLocation,attr"`
	Identifier         XMLIdentifier          `xml:"identifier"`
	Creators           []XMLAgent             `xml:"creators>creator"`
	Titles             []XMLTitle             `xml:"titles>title"`
	Publisher          XMLPublisher           `xml:"publisher"`
	PublicationYear    int                    `xml:"publicationYear"`
	ResourceType       XMLResourceType        `xml:"resourceType"`
	Subjects           []XMLSubject           `xml:"subjects>subject,omitempty"`
	Contributors       []XMLContributor       `xml:"contributors>contributor,omitempty"`
	Dates              []XMLDate              `xml:"dates>date,omitempty"`
	Language           string                 `xml:"language,omitempty"`
	RelatedIdentifiers []XMLRelatedIdentifier `xml:"relatedIdentifiers>relatedIdentifier,omitempty"`
	Version            string                 `xml:"version,omitempty"`
	RightsList         []XMLRights            `xml:"rightsList>rights,omitempty"`
	Descriptions       []XMLDescription       `xml:"descriptions>description,omitempty"`
	GeoLocations       []XMLGeoLocation       `xml:"geoLocations>geoLocation,omitempty"`
	FundingReferences  []XMLFundingReference  `xml:"fundingReferences>fundingReference,omitempty"`
}

type XMLIdentifier struct {
	IdentifierType string `xml:"identifierType,attr"`
	Value          string `xml:",chardata"`
}

// XMLAgent serializes a creator; contributors reuse it for the shared name
// elements.
type XMLAgent struct {
	Name            XMLName             `xml:"creatorName"`
	GivenName       string              `xml:"givenName,omitempty"`
	FamilyName      string              `xml:"familyName,omitempty"`
	NameIdentifiers []XMLNameIdentifier `xml:"nameIdentifier,omitempty"`
	Affiliations    []XMLAffiliation    `xml:"affiliation,omitempty"`
}

type XMLContributor struct {
	ContributorType string              `xml:"contributorType,attr"`
	Name            XMLName             `xml:"contributorName"`
	GivenName       string              `xml:"givenName,omitempty"`
	FamilyName      string              `xml:"familyName,omitempty"`
	NameIdentifiers []XMLNameIdentifier `xml:"nameIdentifier,omitempty"`
	Affiliations    []XMLAffiliation    `xml:"affiliation,omitempty"`
}

type XMLName struct {
	NameType string `xml:"nameType,attr,omitempty"`
	Value    string `xml:",chardata"`
}

type XMLNameIdentifier struct {
	NameIdentifierScheme string `xml:"nameIdentifierScheme,attr"`
	SchemeURI            string `xml:"schemeURI,attr,omitempty"`
	Value                string `xml:",chardata"`
}

type XMLAffiliation struct {
	AffiliationIdentifier       string `xml:"affiliationIdentifier,attr,omitempty"`
	AffiliationIdentifierScheme string `xml:"affiliationIdentifierScheme,attr,omitempty"`
	SchemeURI                   string `xml:"schemeURI,attr,omitempty"`
	Value                       string `xml:",chardata"`
}

type XMLTitle struct {
	TitleType string `xml:"titleType,attr,omitempty"`
	Lang      string `xml:"xml:lang,attr,omitempty"`
	Value     string `xml:",chardata"`
}

type XMLPublisher struct {
	PublisherIdentifier       string `xml:"publisherIdentifier,attr,omitempty"`
	PublisherIdentifierScheme string `xml:"publisherIdentifierScheme,attr,omitempty"`
	SchemeURI                 string `xml:"schemeURI,attr,omitempty"`
	Value                     string `xml:",chardata"`
}

type XMLResourceType struct {
	ResourceTypeGeneral string `xml:"resourceTypeGeneral,attr"`
	Value               string `xml:",chardata"`
}

type XMLSubject struct {
	SubjectScheme string `xml:"subjectScheme,attr,omitempty"`
	SchemeURI     string `xml:"schemeURI,attr,omitempty"`
	ValueURI      string `xml:"valueURI,attr,omitempty"`
	Value         string `xml:",chardata"`
}

type XMLDate struct {
	DateType        string `xml:"dateType,attr"`
	DateInformation string `xml:"dateInformation,attr,omitempty"`
	Value           string `xml:",chardata"`
}

type XMLRelatedIdentifier struct {
	RelatedIdentifierType string `xml:"relatedIdentifierType,attr"`
	RelationType          string `xml:"relationType,attr"`
	Value                 string `xml:",chardata"`
}

type XMLRights struct {
	RightsURI              string `xml:"rightsURI,attr,omitempty"`
	RightsIdentifier       string `xml:"rightsIdentifier,attr,omitempty"`
	RightsIdentifierScheme string `xml:"rightsIdentifierScheme,attr,omitempty"`
	SchemeURI              string `xml:"schemeURI,attr,omitempty"`
	Value                  string `xml:",chardata"`
}

type XMLDescription struct {
	DescriptionType string `xml:"descriptionType,attr"`
	Lang            string `xml:"xml:lang,attr,omitempty"`
	Value           string `xml:",chardata"`
}

type XMLGeoLocation struct {
	Place   *XMLGeoPlace   `xml:"geoLocationPlace,omitempty"`
	Point   *XMLGeoPoint   `xml:"geoLocationPoint,omitempty"`
	Box     *XMLGeoBox     `xml:"geoLocationBox,omitempty"`
	Polygon *XMLGeoPolygon `xml:"geoLocationPolygon,omitempty"`
}

type XMLGeoPlace struct {
	Value string `xml:",chardata"`
}

type XMLGeoPoint struct {
	Longitude string `xml:"pointLongitude"`
	Latitude  string `xml:"pointLatitude"`
}

type XMLGeoBox struct {
	West  string `xml:"westBoundLongitude"`
	East  string `xml:"eastBoundLongitude"`
	South string `xml:"southBoundLatitude"`
	North string `xml:"northBoundLatitude"`
}

type XMLGeoPolygon struct {
	Points []XMLGeoPoint `xml:"polygonPoint"`
}

type XMLFundingReference struct {
	FunderName       string               `xml:"funderName"`
	FunderIdentifier *XMLFunderIdentifier `xml:"funderIdentifier,omitempty"`
	AwardNumber      *XMLAwardNumber      `xml:"awardNumber,omitempty"`
	AwardTitle       string               `xml:"awardTitle,omitempty"`
}

type XMLFunderIdentifier struct {
	FunderIdentifierType string `xml:"funderIdentifierType,attr,omitempty"`
	Value                string `xml:",chardata"`
}

type XMLAwardNumber struct {
	AwardURI string `xml:"awardURI,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// MarshalXML serializes a resource into a DataCite 4.6 XML document,
// applying the default-substitution rules for missing publisher and
// creators. The output always parses back with a standard XML parser;
// encoding/xml escapes all text content and attribute values.
func MarshalXML(r *metadata.Resource, defaults Defaults) ([]byte, error) {
	doc := NewXMLResource(r, defaults)
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, []byte(xml.Header)...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// NewXMLResource maps a resource onto the XML document structure.
func NewXMLResource(r *metadata.Resource, defaults Defaults) *XMLResource {
	publisher := defaults.publisher(r)
	doc := &XMLResource{
		Xmlns:             Namespace,
		XmlnsXsi:          xsiNamespace,
		XsiSchemaLocation: SchemaLocation,
		Identifier:        XMLIdentifier{IdentifierType: "DOI", Value: r.Doi},
		Publisher:         xmlPublisher(publisher),
		PublicationYear:   r.PublicationYear,
		ResourceType: XMLResourceType{
			ResourceTypeGeneral: r.ResourceType.General,
			Value:               r.ResourceType.Value,
		},
		Language: r.Language,
		Version:  r.Version,
	}

	for _, c := range defaults.creators(r) {
		doc.Creators = append(doc.Creators, xmlAgent(c.Agent, c.Affiliations))
	}

	for _, t := range r.Titles {
		doc.Titles = append(doc.Titles, XMLTitle{
			TitleType: t.Type,
			Lang:      t.Language,
			Value:     t.Value,
		})
	}

	for _, c := range r.Contributors {
		agent := xmlAgent(c.Agent, c.Affiliations)
		doc.Contributors = append(doc.Contributors, XMLContributor{
			ContributorType: c.Type,
			Name:            agent.Name,
			GivenName:       agent.GivenName,
			FamilyName:      agent.FamilyName,
			NameIdentifiers: agent.NameIdentifiers,
			Affiliations:    agent.Affiliations,
		})
	}

	for _, s := range r.Subjects {
		doc.Subjects = append(doc.Subjects, XMLSubject{
			SubjectScheme: s.Scheme,
			SchemeURI:     s.SchemeURI,
			ValueURI:      s.ValueURI,
			Value:         s.Value,
		})
	}

	for _, d := range r.Dates {
		doc.Dates = append(doc.Dates, XMLDate{
			DateType:        d.Type,
			DateInformation: d.Information,
			Value:           d.Value(),
		})
	}

	for _, rel := range r.RelatedIdentifiers {
		doc.RelatedIdentifiers = append(doc.RelatedIdentifiers, XMLRelatedIdentifier{
			RelatedIdentifierType: rel.IdentifierType,
			RelationType:          rel.RelationType,
			Value:                 rel.Identifier,
		})
	}

	for _, rights := range r.Rights {
		doc.RightsList = append(doc.RightsList, XMLRights{
			RightsURI:              rights.URI,
			RightsIdentifier:       rights.Identifier,
			RightsIdentifierScheme: rights.IdentifierScheme,
			SchemeURI:              rights.SchemeURI,
			Value:                  rights.Name,
		})
	}

	for _, d := range r.Descriptions {
		doc.Descriptions = append(doc.Descriptions, XMLDescription{
			DescriptionType: d.Type,
			Lang:            d.Language,
			Value:           d.Value,
		})
	}

	for _, g := range r.GeoLocations {
		doc.GeoLocations = append(doc.GeoLocations, xmlGeoLocation(g))
	}

	for _, f := range r.FundingReferences {
		doc.FundingReferences = append(doc.FundingReferences, xmlFundingReference(f))
	}

	return doc
}

func xmlPublisher(p metadata.Publisher) XMLPublisher {
	pub := XMLPublisher{Value: p.Name}
	if p.RorId != "" {
		pub.PublisherIdentifier = metadata.NormalizeRor(p.RorId)
		pub.PublisherIdentifierScheme = metadata.SchemeRor
		pub.SchemeURI = metadata.RorSchemeURI
	}
	return pub
}

func xmlAgent(agent metadata.Agent, affiliations []metadata.Affiliation) XMLAgent {
	out := XMLAgent{
		Name: XMLName{NameType: agent.NameType(), Value: agent.DisplayName()},
	}
	if agent.IsPerson() {
		out.GivenName = agent.Person.GivenName
		out.FamilyName = agent.Person.FamilyName
	}
	if id, ok := agent.NameIdentifier(); ok {
		out.NameIdentifiers = []XMLNameIdentifier{{
			NameIdentifierScheme: id.Scheme,
			SchemeURI:            id.SchemeURI,
			Value:                id.Value,
		}}
	}
	for _, a := range affiliations {
		aff := XMLAffiliation{Value: a.Name}
		if a.RorId != "" {
			aff.AffiliationIdentifier = metadata.NormalizeRor(a.RorId)
			aff.AffiliationIdentifierScheme = metadata.SchemeRor
			aff.SchemeURI = metadata.RorSchemeURI
		}
		out.Affiliations = append(out.Affiliations, aff)
	}
	return out
}

func xmlGeoLocation(g metadata.GeoLocation) XMLGeoLocation {
	var loc XMLGeoLocation
	if g.Place != "" {
		loc.Place = &XMLGeoPlace{Value: g.Place}
	}
	if g.Point != nil {
		point := xmlGeoPoint(*g.Point)
		loc.Point = &point
	}
	if g.Box != nil {
		loc.Box = &XMLGeoBox{
			West:  formatCoordinate(g.Box.West),
			East:  formatCoordinate(g.Box.East),
			South: formatCoordinate(g.Box.South),
			North: formatCoordinate(g.Box.North),
		}
	}
	if len(g.Polygon) > 0 {
		polygon := &XMLGeoPolygon{}
		for _, p := range closePolygon(g.Polygon) {
			polygon.Points = append(polygon.Points, xmlGeoPoint(p))
		}
		loc.Polygon = polygon
	}
	return loc
}

func xmlGeoPoint(p metadata.GeoPoint) XMLGeoPoint {
	return XMLGeoPoint{
		Longitude: formatCoordinate(p.Longitude),
		Latitude:  formatCoordinate(p.Latitude),
	}
}

func xmlFundingReference(f metadata.FundingReference) XMLFundingReference {
	ref := XMLFundingReference{
		FunderName: f.FunderName,
		AwardTitle: f.AwardTitle,
	}
	if f.FunderIdentifier != "" {
		ref.FunderIdentifier = &XMLFunderIdentifier{
			FunderIdentifierType: f.FunderIdentifierType,
			Value:                f.FunderIdentifier,
		}
	}
	if f.AwardNumber != "" || f.AwardURI != "" {
		ref.AwardNumber = &XMLAwardNumber{
			AwardURI: f.AwardURI,
			Value:    f.AwardNumber,
		}
	}
	return ref
}
