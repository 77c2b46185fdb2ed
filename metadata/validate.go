package metadata

import (
	"fmt"
	"net/url"
)

// Save-time validation. Import is permissive (third-party documents arrive
// with whatever they arrive with), but a resource saved through the editor
// must pass these checks before it lands in the store.

// A ValidationError names the field that failed and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the resource against the controlled vocabularies and the
// structural rules that exports rely on.
func (r *Resource) Validate() error {
	if r.ResourceType.General != "" && !KnownResourceTypeGeneral(r.ResourceType.General) {
		return &ValidationError{
			Field:   "resource_type",
			Message: fmt.Sprintf("unknown general resource type %q", r.ResourceType.General),
		}
	}
	for i, t := range r.Titles {
		if t.Type != "" && !KnownTitleType(t.Type) {
			return &ValidationError{
				Field:   fmt.Sprintf("titles[%d]", i),
				Message: fmt.Sprintf("unknown title type %q", t.Type),
			}
		}
	}
	for i, d := range r.Descriptions {
		if !KnownDescriptionType(d.Type) {
			return &ValidationError{
				Field:   fmt.Sprintf("descriptions[%d]", i),
				Message: fmt.Sprintf("unknown description type %q", d.Type),
			}
		}
	}
	for i, f := range r.FundingReferences {
		if err := f.Validate(); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("funding_references[%d]", i),
				Message: err.Error(),
			}
		}
	}
	for i, rel := range r.RelatedIdentifiers {
		if rel.Identifier == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("related_identifiers[%d]", i),
				Message: "missing identifier",
			}
		}
		if !KnownRelationType(rel.RelationType) {
			return &ValidationError{
				Field:   fmt.Sprintf("related_identifiers[%d]", i),
				Message: fmt.Sprintf("unknown relation type %q", rel.RelationType),
			}
		}
	}
	for i, c := range r.Contributors {
		if !KnownContributorType(c.Type) {
			return &ValidationError{
				Field:   fmt.Sprintf("contributors[%d]", i),
				Message: fmt.Sprintf("unknown contributor type %q", c.Type),
			}
		}
	}
	for i, d := range r.Dates {
		if !KnownDateType(d.Type) {
			return &ValidationError{
				Field:   fmt.Sprintf("dates[%d]", i),
				Message: fmt.Sprintf("unknown date type %q", d.Type),
			}
		}
		if d.Start == "" && d.End == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("dates[%d]", i),
				Message: "empty date",
			}
		}
	}
	return nil
}

// Validate checks a funding reference: the funder name is required, the
// funder identifier type (when an identifier is present) must come from the
// allow-list, and the award URI must be a well-formed absolute URL.
func (f FundingReference) Validate() error {
	if f.FunderName == "" {
		return fmt.Errorf("missing funder name")
	}
	if f.FunderIdentifier != "" && !KnownFunderIdentifierType(f.FunderIdentifierType) {
		return fmt.Errorf("unknown funder identifier type %q", f.FunderIdentifierType)
	}
	if f.AwardURI != "" {
		u, err := url.Parse(f.AwardURI)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("award URI %q is not a valid URL", f.AwardURI)
		}
	}
	return nil
}
