// Package datacite generates and parses documents conforming to the DataCite
// Metadata Schema 4.6: an XML exporter, a JSON:API exporter sharing the same
// field mapping, and a permissive XML importer for third-party documents.
package datacite

import (
	"strconv"

	"github.com/gfz-metadata/mex/metadata"
)

// SchemaVersion documents the DataCite metadata schema this implementation
// targets.
const SchemaVersion = "4.6"

const (
	// Namespace is the DataCite kernel-4 XML namespace.
	Namespace = "http://datacite.org/schema/kernel-4"
	// xsiNamespace is the XML Schema instance namespace.
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	// SchemaLocation pins exported documents to the 4.6 kernel schema.
	SchemaLocation = Namespace +
		" https://schema.datacite.org/meta/kernel-4.6/metadata.xsd"
)

// Defaults carries the institutional fallback values applied during export.
// A resource without an explicitly assigned publisher is published under
// PublisherName/PublisherRorId.
type Defaults struct {
	PublisherName  string
	PublisherRorId string
}

// publisher resolves the effective publisher for a resource.
func (d Defaults) publisher(r *metadata.Resource) metadata.Publisher {
	if r.Publisher != nil && r.Publisher.Name != "" {
		return *r.Publisher
	}
	return metadata.Publisher{Name: d.PublisherName, RorId: d.PublisherRorId}
}

// creators resolves the effective creator list for a resource: the schema
// requires at least one creator, so a resource without any gets the
// "Unknown" placeholder.
func (d Defaults) creators(r *metadata.Resource) []metadata.Creator {
	if len(r.Creators) == 0 {
		return []metadata.Creator{metadata.UnknownCreator()}
	}
	return r.Creators
}

// formatCoordinate renders a coordinate as a decimal number with trailing
// zeros stripped ("52.50" -> "52.5", "13.0" -> "13").
func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// closePolygon returns the polygon with the first point repeated at the end
// when the source list isn't already closed.
func closePolygon(points []metadata.GeoPoint) []metadata.GeoPoint {
	if len(points) == 0 {
		return points
	}
	if points[0] == points[len(points)-1] {
		return points
	}
	closed := make([]metadata.GeoPoint, len(points), len(points)+1)
	copy(closed, points)
	return append(closed, points[0])
}
