package metadata

// This package defines the resource graph consumed by the DataCite exporters
// and produced by the editor: a Resource root aggregate owning ordered
// collections of titles, creators, contributors, dates, rights, subjects,
// geolocations, funding references, and related identifiers. Collection
// ordering is the insertion order of the slices; every collection is
// optional.

// Resource is the root aggregate, read as a snapshot at export time.
type Resource struct {
	// record id assigned by the store (0 for unsaved drafts)
	Id int64 `json:"id,omitempty"`
	// the resource's DOI, empty when not (yet) registered
	Doi string `json:"doi,omitempty"`
	// year of publication
	PublicationYear int `json:"publication_year,omitempty"`
	// version string for the resource (optional)
	Version string `json:"version,omitempty"`
	// primary language as an IETF BCP-47 tag (optional)
	Language string `json:"language,omitempty"`
	// the type of the resource
	ResourceType ResourceType `json:"resource_type"`
	// the publishing institution; nil selects the configured default
	Publisher *Publisher `json:"publisher,omitempty"`
	// flag set by curators when the record has been reviewed
	Curated bool `json:"curated,omitempty"`

	Titles             []Title             `json:"titles,omitempty"`
	Creators           []Creator           `json:"creators,omitempty"`
	Contributors       []Contributor       `json:"contributors,omitempty"`
	Descriptions       []Description       `json:"descriptions,omitempty"`
	Dates              []Date              `json:"dates,omitempty"`
	Rights             []Rights            `json:"rights,omitempty"`
	Subjects           []Subject           `json:"subjects,omitempty"`
	GeoLocations       []GeoLocation       `json:"geolocations,omitempty"`
	FundingReferences  []FundingReference  `json:"funding_references,omitempty"`
	RelatedIdentifiers []RelatedIdentifier `json:"related_identifiers,omitempty"`
}

// the type of a resource: a free-text value plus one of the DataCite
// resourceTypeGeneral vocabulary entries
type ResourceType struct {
	Value   string `json:"value,omitempty"`
	General string `json:"general,omitempty"`
}

// the institution publishing a resource
type Publisher struct {
	Name string `json:"name"`
	// ROR identifier in canonical URL form (optional)
	RorId string `json:"ror_id,omitempty"`
}

// A title for a resource. An empty Type marks the main title; at most the
// first untyped title (by stored order) is treated as the main title.
type Title struct {
	Value string `json:"value"`
	// one of the DataCite titleType values, or empty for the main title
	Type     string `json:"type,omitempty"`
	Language string `json:"language,omitempty"`
}

// MainTitle returns the first untyped title by stored order, or the empty
// string when the resource has none.
func (r *Resource) MainTitle() string {
	for _, t := range r.Titles {
		if t.Type == "" {
			return t.Value
		}
	}
	return ""
}

// a textual description of a resource
type Description struct {
	Value string `json:"value"`
	// one of the DataCite descriptionType values
	Type     string `json:"type"`
	Language string `json:"language,omitempty"`
}

// A date (or date range) in the life cycle of a resource. Start and End hold
// ISO 8601 date strings; an empty End makes this a single date.
type Date struct {
	// one of the DataCite dateType values
	Type  string `json:"type"`
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
	// free-text information about the date (optional)
	Information string `json:"information,omitempty"`
}

// Value renders the date the way DataCite expects it: a range collapses to
// "start/end", a lone start date stands by itself.
func (d Date) Value() string {
	if d.End != "" {
		return d.Start + "/" + d.End
	}
	return d.Start
}

// a license or rights statement attached to a resource
type Rights struct {
	// display name of the license (e.g. "Creative Commons Attribution 4.0
	// International")
	Name string `json:"name"`
	// SPDX identifier (e.g. "CC-BY-4.0")
	Identifier string `json:"identifier,omitempty"`
	// URI of the license text
	URI string `json:"uri,omitempty"`
	// scheme metadata for the identifier (SPDX)
	IdentifierScheme string `json:"identifier_scheme,omitempty"`
	SchemeURI        string `json:"scheme_uri,omitempty"`
}

// a free-text or controlled-vocabulary subject/keyword
type Subject struct {
	Value     string `json:"value"`
	Scheme    string `json:"scheme,omitempty"`
	SchemeURI string `json:"scheme_uri,omitempty"`
	ValueURI  string `json:"value_uri,omitempty"`
}

// a point in a geolocation (longitude/latitude in decimal degrees, WGS 84)
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// a geographic bounding box
type GeoBox struct {
	West  float64 `json:"west"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
	North float64 `json:"north"`
}

// A geographic location related to a resource. All parts are optional; a
// polygon is an ordered point list, closed on export when the document is
// generated.
type GeoLocation struct {
	Place   string     `json:"place,omitempty"`
	Point   *GeoPoint  `json:"point,omitempty"`
	Box     *GeoBox    `json:"box,omitempty"`
	Polygon []GeoPoint `json:"polygon,omitempty"`
}

// a funding source for a resource
type FundingReference struct {
	FunderName           string `json:"funder_name"`
	FunderIdentifier     string `json:"funder_identifier,omitempty"`
	FunderIdentifierType string `json:"funder_identifier_type,omitempty"`
	AwardNumber          string `json:"award_number,omitempty"`
	AwardURI             string `json:"award_uri,omitempty"`
	AwardTitle           string `json:"award_title,omitempty"`
}

// an identifier of a related resource
type RelatedIdentifier struct {
	Identifier string `json:"identifier"`
	// the type of the identifier (DOI, URL, Handle, ...)
	IdentifierType string `json:"identifier_type"`
	// one of the DataCite relationType values
	RelationType string `json:"relation_type"`
}
