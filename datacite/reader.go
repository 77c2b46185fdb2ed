package datacite

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/gfz-metadata/mex/metadata"
)

// ErrNoResource indicates a well-formed XML document that contains no
// DataCite <resource> element.
var ErrNoResource = errors.New("no DataCite resource element in document")

// LaboratoryResolver looks up a laboratory by its registry id. A miss is
// not an error; the importer keeps the values found in the XML.
type LaboratoryResolver interface {
	Resolve(labId string) (name, affiliation string, ok bool)
}

// Record is the permissive intermediate form produced by the importer.
// Every scalar is nullable and every list may be empty: third-party
// documents are accepted as-is and handed to an editor for review, so
// nothing here is validated beyond XML well-formedness.
type Record struct {
	Doi                *string             `json:"doi"`
	PublicationYear    *int                `json:"publication_year"`
	Version            *string             `json:"version"`
	Language           *string             `json:"language"`
	ResourceType       *RecordResourceType `json:"resource_type"`
	Titles             []RecordTitle       `json:"titles,omitempty"`
	Descriptions       []RecordDescription `json:"descriptions,omitempty"`
	Subjects           []string            `json:"subjects,omitempty"`
	Creators           []RecordAgent       `json:"creators,omitempty"`
	Contributors       []RecordAgent       `json:"contributors,omitempty"`
	MslLaboratories    []RecordLaboratory  `json:"msl_laboratories,omitempty"`
	Dates              []RecordDate        `json:"dates,omitempty"`
	FundingReferences  []RecordFunding     `json:"funding_references,omitempty"`
	RelatedIdentifiers []RecordRelated     `json:"related_identifiers,omitempty"`
}

type RecordResourceType struct {
	Value   string `json:"value"`
	General string `json:"general"`
}

type RecordTitle struct {
	Value    string `json:"value"`
	Type     string `json:"type,omitempty"`
	Language string `json:"language,omitempty"`
}

type RecordDescription struct {
	Value    string `json:"value"`
	Type     string `json:"type,omitempty"`
	Language string `json:"language,omitempty"`
}

type RecordAgent struct {
	Name             string              `json:"name"`
	NameType         string              `json:"name_type,omitempty"`
	GivenName        string              `json:"given_name,omitempty"`
	FamilyName       string              `json:"family_name,omitempty"`
	Identifier       string              `json:"identifier,omitempty"`
	IdentifierScheme string              `json:"identifier_scheme,omitempty"`
	ContributorType  string              `json:"contributor_type,omitempty"`
	Affiliations     []RecordAffiliation `json:"affiliations,omitempty"`
}

type RecordAffiliation struct {
	Name  string `json:"name"`
	RorId string `json:"ror_id,omitempty"`
}

// RecordLaboratory is a HostingInstitution contributor carrying a labid
// name identifier, routed out of the contributor list and enriched from
// the laboratory registry.
type RecordLaboratory struct {
	LabId       string `json:"lab_id"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
}

type RecordDate struct {
	Type        string `json:"type"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	Information string `json:"information,omitempty"`
}

type RecordFunding struct {
	FunderName           string `json:"funder_name"`
	FunderIdentifier     string `json:"funder_identifier,omitempty"`
	FunderIdentifierType string `json:"funder_identifier_type,omitempty"`
	AwardNumber          string `json:"award_number,omitempty"`
	AwardURI             string `json:"award_uri,omitempty"`
	AwardTitle           string `json:"award_title,omitempty"`
}

type RecordRelated struct {
	Identifier     string `json:"identifier"`
	IdentifierType string `json:"identifier_type,omitempty"`
	RelationType   string `json:"relation_type,omitempty"`
}

// parse-side XML types (separate from the export types, which carry the
// fixed envelope and omit attributes the exporter never writes)

type parseResource struct {
	XMLName            xml.Name           `xml:"resource"`
	Identifier         *parseIdentifier   `xml:"identifier"`
	Creators           []parseAgent       `xml:"creators>creator"`
	Titles             []parseTitle       `xml:"titles>title"`
	PublicationYear    string             `xml:"publicationYear"`
	ResourceType       *parseResourceType `xml:"resourceType"`
	Subjects           []parseSubject     `xml:"subjects>subject"`
	Contributors       []parseAgent       `xml:"contributors>contributor"`
	Dates              []parseDate        `xml:"dates>date"`
	Language           string             `xml:"language"`
	RelatedIdentifiers []parseRelated     `xml:"relatedIdentifiers>relatedIdentifier"`
	Descriptions       []parseDescription `xml:"descriptions>description"`
	FundingReferences  []parseFunding     `xml:"fundingReferences>fundingReference"`
	Version            string             `xml:"version"`
}

type parseIdentifier struct {
	Value string `xml:",chardata"`
	Type  string `xml:"identifierType,attr"`
}

type parseAgent struct {
	ContributorType string             `xml:"contributorType,attr"`
	CreatorName     parseName          `xml:"creatorName"`
	ContributorName parseName          `xml:"contributorName"`
	GivenName       string             `xml:"givenName"`
	FamilyName      string             `xml:"familyName"`
	NameIdentifiers []parseNameId      `xml:"nameIdentifier"`
	Affiliations    []parseAffiliation `xml:"affiliation"`
}

type parseName struct {
	Value    string `xml:",chardata"`
	NameType string `xml:"nameType,attr"`
}

type parseNameId struct {
	Value     string `xml:",chardata"`
	Scheme    string `xml:"nameIdentifierScheme,attr"`
	SchemeURI string `xml:"schemeURI,attr"`
}

type parseAffiliation struct {
	Value      string `xml:",chardata"`
	Identifier string `xml:"affiliationIdentifier,attr"`
	Scheme     string `xml:"affiliationIdentifierScheme,attr"`
}

type parseTitle struct {
	Value    string `xml:",chardata"`
	Type     string `xml:"titleType,attr"`
	Language string `xml:"lang,attr"`
}

type parseResourceType struct {
	Value   string `xml:",chardata"`
	General string `xml:"resourceTypeGeneral,attr"`
}

type parseSubject struct {
	Value string `xml:",chardata"`
}

type parseDate struct {
	Value       string `xml:",chardata"`
	Type        string `xml:"dateType,attr"`
	Information string `xml:"dateInformation,attr"`
}

type parseRelated struct {
	Value          string `xml:",chardata"`
	IdentifierType string `xml:"relatedIdentifierType,attr"`
	RelationType   string `xml:"relationType,attr"`
}

type parseDescription struct {
	Value    string `xml:",chardata"`
	Type     string `xml:"descriptionType,attr"`
	Language string `xml:"lang,attr"`
}

type parseFunding struct {
	FunderName       string           `xml:"funderName"`
	FunderIdentifier parseFunderId    `xml:"funderIdentifier"`
	AwardNumber      parseAwardNumber `xml:"awardNumber"`
	AwardTitle       string           `xml:"awardTitle"`
}

type parseFunderId struct {
	Value string `xml:",chardata"`
	Type  string `xml:"funderIdentifierType,attr"`
}

type parseAwardNumber struct {
	Value    string `xml:",chardata"`
	AwardURI string `xml:"awardURI,attr"`
}

// Read parses a third-party DataCite XML document into a permissive Record.
// Documents wrapped in OAI-PMH responses are handled by scanning for the
// first <resource> element. Non-well-formed XML and documents without a
// resource element produce an error; everything else is accepted.
func Read(data []byte, labs LaboratoryResolver) (*Record, error) {
	res, err := extractResource(data)
	if err != nil {
		return nil, err
	}
	return newRecord(res, labs), nil
}

// extractResource scans the token stream for the first <resource> element
// and decodes it, tolerating wrapper elements around it.
func extractResource(data []byte) (*parseResource, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, ErrNoResource
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "resource" {
			var res parseResource
			if err := decoder.DecodeElement(&res, &start); err != nil {
				return nil, fmt.Errorf("decoding resource element: %w", err)
			}
			return &res, nil
		}
	}
}

func newRecord(res *parseResource, labs LaboratoryResolver) *Record {
	record := &Record{}

	if res.Identifier != nil {
		if doi := strings.TrimSpace(res.Identifier.Value); doi != "" {
			record.Doi = &doi
		}
	}
	if v := strings.TrimSpace(res.Version); v != "" {
		record.Version = &v
	}
	if lang := strings.TrimSpace(res.Language); lang != "" {
		record.Language = &lang
	}
	if res.ResourceType != nil {
		record.ResourceType = &RecordResourceType{
			Value:   strings.TrimSpace(res.ResourceType.Value),
			General: res.ResourceType.General,
		}
	}

	for _, t := range res.Titles {
		if value := strings.TrimSpace(t.Value); value != "" {
			record.Titles = append(record.Titles, RecordTitle{
				Value:    value,
				Type:     t.Type,
				Language: t.Language,
			})
		}
	}

	for _, d := range res.Descriptions {
		if value := strings.TrimSpace(d.Value); value != "" {
			record.Descriptions = append(record.Descriptions, RecordDescription{
				Value:    value,
				Type:     d.Type,
				Language: d.Language,
			})
		}
	}

	for _, s := range res.Subjects {
		if value := strings.TrimSpace(s.Value); value != "" {
			record.Subjects = append(record.Subjects, value)
		}
	}

	for _, c := range res.Creators {
		if agent, ok := recordAgent(c, c.CreatorName); ok {
			record.Creators = append(record.Creators, agent)
		}
	}

	for _, c := range res.Contributors {
		if lab, ok := recordLaboratory(c, labs); ok {
			record.MslLaboratories = append(record.MslLaboratories, lab)
			continue
		}
		if agent, ok := recordAgent(c, c.ContributorName); ok {
			agent.ContributorType = c.ContributorType
			record.Contributors = append(record.Contributors, agent)
		}
	}

	for _, d := range res.Dates {
		if date, ok := recordDate(d); ok {
			record.Dates = append(record.Dates, date)
		}
	}

	for _, f := range res.FundingReferences {
		record.FundingReferences = append(record.FundingReferences, RecordFunding{
			FunderName:           strings.TrimSpace(f.FunderName),
			FunderIdentifier:     strings.TrimSpace(f.FunderIdentifier.Value),
			FunderIdentifierType: f.FunderIdentifier.Type,
			AwardNumber:          strings.TrimSpace(f.AwardNumber.Value),
			AwardURI:             f.AwardNumber.AwardURI,
			AwardTitle:           strings.TrimSpace(f.AwardTitle),
		})
	}

	for _, rel := range res.RelatedIdentifiers {
		if value := strings.TrimSpace(rel.Value); value != "" {
			record.RelatedIdentifiers = append(record.RelatedIdentifiers, RecordRelated{
				Identifier:     value,
				IdentifierType: rel.IdentifierType,
				RelationType:   rel.RelationType,
			})
		}
	}

	record.PublicationYear = publicationYear(res)

	return record
}

// publicationYear parses the publicationYear element, falling back to the
// year of an Issued date when the element is missing or unparsable.
func publicationYear(res *parseResource) *int {
	if year, err := strconv.Atoi(strings.TrimSpace(res.PublicationYear)); err == nil && year > 0 {
		return &year
	}
	for _, d := range res.Dates {
		if d.Type != "Issued" {
			continue
		}
		value := strings.TrimSpace(d.Value)
		if start, _, found := strings.Cut(value, "/"); found {
			value = start
		}
		if t, err := dateparse.ParseAny(value); err == nil {
			year := t.Year()
			return &year
		}
	}
	return nil
}

// recordAgent converts a parsed creator or contributor, dropping entries
// without any usable name.
func recordAgent(c parseAgent, name parseName) (RecordAgent, bool) {
	agent := RecordAgent{
		Name:       strings.TrimSpace(name.Value),
		NameType:   name.NameType,
		GivenName:  strings.TrimSpace(c.GivenName),
		FamilyName: strings.TrimSpace(c.FamilyName),
	}
	if agent.Name == "" && agent.GivenName == "" && agent.FamilyName == "" {
		return RecordAgent{}, false
	}
	if agent.Name == "" {
		agent.Name = metadata.PersonAgent(agent.GivenName, agent.FamilyName, "").DisplayName()
	}
	agent.Identifier, agent.IdentifierScheme = agentIdentifier(c.NameIdentifiers)
	for _, a := range c.Affiliations {
		if aff, ok := recordAffiliation(a); ok {
			agent.Affiliations = append(agent.Affiliations, aff)
		}
	}
	return agent, true
}

// agentIdentifier picks the first recognizable name identifier, normalizing
// ORCID and ROR values to canonical URL form. The scheme attribute is
// optional: bare URLs are classified by prefix.
func agentIdentifier(ids []parseNameId) (string, string) {
	for _, id := range ids {
		value := strings.TrimSpace(id.Value)
		if value == "" {
			continue
		}
		switch {
		case strings.EqualFold(id.Scheme, metadata.SchemeOrcid):
			return metadata.NormalizeOrcid(value), metadata.SchemeOrcid
		case strings.EqualFold(id.Scheme, metadata.SchemeRor) || metadata.IsRorURL(value):
			return metadata.NormalizeRor(value), metadata.SchemeRor
		case strings.Contains(value, "orcid.org/"):
			return metadata.NormalizeOrcid(value), metadata.SchemeOrcid
		case id.Scheme == "":
			return value, ""
		default:
			return value, id.Scheme
		}
	}
	return "", ""
}

// recordAffiliation keeps an affiliation's ROR id when one is present,
// whether declared via the scheme attribute or recognizable by URL prefix.
func recordAffiliation(a parseAffiliation) (RecordAffiliation, bool) {
	aff := RecordAffiliation{Name: strings.TrimSpace(a.Value)}
	if aff.Name == "" {
		return RecordAffiliation{}, false
	}
	id := strings.TrimSpace(a.Identifier)
	if id != "" && (strings.EqualFold(a.Scheme, metadata.SchemeRor) || metadata.IsRorURL(id)) {
		aff.RorId = metadata.NormalizeRor(id)
	}
	return aff, true
}

// recordLaboratory routes a HostingInstitution contributor carrying a labid
// name identifier into the laboratory bucket, enriched from the registry.
// Registry misses keep the XML-supplied name and affiliation.
func recordLaboratory(c parseAgent, labs LaboratoryResolver) (RecordLaboratory, bool) {
	if c.ContributorType != "HostingInstitution" {
		return RecordLaboratory{}, false
	}
	var labId string
	for _, id := range c.NameIdentifiers {
		if strings.EqualFold(id.Scheme, "labid") {
			labId = strings.TrimSpace(id.Value)
			break
		}
	}
	if labId == "" {
		return RecordLaboratory{}, false
	}
	lab := RecordLaboratory{
		LabId: labId,
		Name:  strings.TrimSpace(c.ContributorName.Value),
	}
	if len(c.Affiliations) > 0 {
		lab.Affiliation = strings.TrimSpace(c.Affiliations[0].Value)
	}
	if labs != nil {
		if name, affiliation, ok := labs.Resolve(labId); ok {
			lab.Name = name
			lab.Affiliation = affiliation
		}
	}
	return lab, true
}

// recordDate splits a range value ("start/end") into its parts.
func recordDate(d parseDate) (RecordDate, bool) {
	value := strings.TrimSpace(d.Value)
	if value == "" {
		return RecordDate{}, false
	}
	start, end, _ := strings.Cut(value, "/")
	return RecordDate{
		Type:        d.Type,
		Start:       start,
		End:         end,
		Information: d.Information,
	}, true
}
