package metadata

// Controlled vocabularies fixed by the DataCite Metadata Schema 4.6. These
// tables are populated once at process start and never mutated; every call
// site reads them through the lookup helpers.

// relation types and their bidirectional opposites
var relationTypeOpposites = map[string]string{
	"IsCitedBy":           "Cites",
	"Cites":               "IsCitedBy",
	"IsSupplementTo":      "IsSupplementedBy",
	"IsSupplementedBy":    "IsSupplementTo",
	"IsContinuedBy":       "Continues",
	"Continues":           "IsContinuedBy",
	"IsDescribedBy":       "Describes",
	"Describes":           "IsDescribedBy",
	"HasMetadata":         "IsMetadataFor",
	"IsMetadataFor":       "HasMetadata",
	"HasVersion":          "IsVersionOf",
	"IsVersionOf":         "HasVersion",
	"IsNewVersionOf":      "IsPreviousVersionOf",
	"IsPreviousVersionOf": "IsNewVersionOf",
	"IsPartOf":            "HasPart",
	"HasPart":             "IsPartOf",
	"IsReferencedBy":      "References",
	"References":          "IsReferencedBy",
	"IsDocumentedBy":      "Documents",
	"Documents":           "IsDocumentedBy",
	"IsCompiledBy":        "Compiles",
	"Compiles":            "IsCompiledBy",
	"IsVariantFormOf":     "IsOriginalFormOf",
	"IsOriginalFormOf":    "IsVariantFormOf",
	"IsIdenticalTo":       "IsIdenticalTo",
	"IsReviewedBy":        "Reviews",
	"Reviews":             "IsReviewedBy",
	"IsDerivedFrom":       "IsSourceOf",
	"IsSourceOf":          "IsDerivedFrom",
	"IsRequiredBy":        "Requires",
	"Requires":            "IsRequiredBy",
	"IsObsoletedBy":       "Obsoletes",
	"Obsoletes":           "IsObsoletedBy",
	"IsCollectedBy":       "Collects",
	"Collects":            "IsCollectedBy",
	"IsTranslationOf":     "HasTranslation",
	"HasTranslation":      "IsTranslationOf",
}

// relation types the schema defines no inverse for
var unpairedRelationTypes = map[string]struct{}{
	"IsPublishedIn": {},
}

// funder identifier types accepted when saving an edited resource
var funderIdentifierTypes = map[string]struct{}{
	"ROR":                {},
	"Crossref Funder ID": {},
	"ISNI":               {},
	"GRID":               {},
	"Other":              {},
}

// DataCite contributorType vocabulary
var contributorTypes = map[string]struct{}{
	"ContactPerson":         {},
	"DataCollector":         {},
	"DataCurator":           {},
	"DataManager":           {},
	"Distributor":           {},
	"Editor":                {},
	"HostingInstitution":    {},
	"Producer":              {},
	"ProjectLeader":         {},
	"ProjectManager":        {},
	"ProjectMember":         {},
	"RegistrationAgency":    {},
	"RegistrationAuthority": {},
	"RelatedPerson":         {},
	"Researcher":            {},
	"ResearchGroup":         {},
	"RightsHolder":          {},
	"Sponsor":               {},
	"Supervisor":            {},
	"Translator":            {},
	"WorkPackageLeader":     {},
	"Other":                 {},
}

// DataCite dateType vocabulary
var dateTypes = map[string]struct{}{
	"Accepted":    {},
	"Available":   {},
	"Copyrighted": {},
	"Collected":   {},
	"Coverage":    {},
	"Created":     {},
	"Issued":      {},
	"Submitted":   {},
	"Updated":     {},
	"Valid":       {},
	"Withdrawn":   {},
	"Other":       {},
}

// DataCite titleType vocabulary (the main title carries no type)
var titleTypes = map[string]struct{}{
	"AlternativeTitle": {},
	"Subtitle":         {},
	"TranslatedTitle":  {},
	"Other":            {},
}

// DataCite descriptionType vocabulary
var descriptionTypes = map[string]struct{}{
	"Abstract":          {},
	"Methods":           {},
	"SeriesInformation": {},
	"TableOfContents":   {},
	"TechnicalInfo":     {},
	"Other":             {},
}

// DataCite resourceTypeGeneral vocabulary
var resourceTypesGeneral = map[string]struct{}{
	"Audiovisual":           {},
	"Award":                 {},
	"Book":                  {},
	"BookChapter":           {},
	"Collection":            {},
	"ComputationalNotebook": {},
	"ConferencePaper":       {},
	"ConferenceProceeding":  {},
	"DataPaper":             {},
	"Dataset":               {},
	"Dissertation":          {},
	"Event":                 {},
	"Image":                 {},
	"Instrument":            {},
	"InteractiveResource":   {},
	"Journal":               {},
	"JournalArticle":        {},
	"Model":                 {},
	"OutputManagementPlan":  {},
	"PeerReview":            {},
	"PhysicalObject":        {},
	"Preprint":              {},
	"Project":               {},
	"Report":                {},
	"Service":               {},
	"Software":              {},
	"Sound":                 {},
	"Standard":              {},
	"StudyRegistration":     {},
	"Text":                  {},
	"Workflow":              {},
	"Other":                 {},
}

// KnownRelationType reports whether the given relation type belongs to the
// DataCite relationType vocabulary.
func KnownRelationType(relationType string) bool {
	if _, found := relationTypeOpposites[relationType]; found {
		return true
	}
	_, found := unpairedRelationTypes[relationType]
	return found
}

// OppositeRelationType returns the bidirectional opposite of the given
// relation type ("Cites" -> "IsCitedBy"), with ok=false for unknown types and
// for types without a defined inverse (IsPublishedIn).
func OppositeRelationType(relationType string) (string, bool) {
	opposite, found := relationTypeOpposites[relationType]
	return opposite, found
}

// KnownFunderIdentifierType reports whether the given funder identifier type
// is in the allow-list (ROR, Crossref Funder ID, ISNI, GRID, Other).
func KnownFunderIdentifierType(identifierType string) bool {
	_, found := funderIdentifierTypes[identifierType]
	return found
}

// KnownContributorType reports whether the given contributor type belongs to
// the DataCite contributorType vocabulary.
func KnownContributorType(contributorType string) bool {
	_, found := contributorTypes[contributorType]
	return found
}

// KnownDateType reports whether the given date type belongs to the DataCite
// dateType vocabulary.
func KnownDateType(dateType string) bool {
	_, found := dateTypes[dateType]
	return found
}

// KnownTitleType reports whether the given title type belongs to the DataCite
// titleType vocabulary (the empty type marks the main title and is handled by
// callers).
func KnownTitleType(titleType string) bool {
	_, found := titleTypes[titleType]
	return found
}

// KnownDescriptionType reports whether the given description type belongs to
// the DataCite descriptionType vocabulary.
func KnownDescriptionType(descriptionType string) bool {
	_, found := descriptionTypes[descriptionType]
	return found
}

// KnownResourceTypeGeneral reports whether the given general type belongs to
// the DataCite resourceTypeGeneral vocabulary.
func KnownResourceTypeGeneral(generalType string) bool {
	_, found := resourceTypesGeneral[generalType]
	return found
}
