package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/gfz-metadata/mex/datacite"
	"github.com/gfz-metadata/mex/metadata"
	"github.com/gfz-metadata/mex/store"
)

// this type encodes a JSON object for responding to root queries
type ServiceInfoResponse struct {
	Name          string `json:"name" example:"MEX" doc:"The name of the service API"`
	Version       string `json:"version" example:"1.0.0" doc:"The version string (major.minor.patch)"`
	Uptime        int    `json:"uptime" example:"345600" doc:"The time the service has been up (seconds)"`
	Documentation string `json:"documentation" example:"/docs" doc:"The OpenAPI documentation endpoint"`
}

// a response for a resource listing query (GET)
type ResourceListResponse struct {
	Resources []store.ResourceEntry `json:"resources" doc:"the stored resources, in id order"`
}

// a response for a resource save request (PUT)
type SaveResponse struct {
	Id  int    `json:"id" doc:"the id under which the resource was saved"`
	Doi string `json:"doi,omitempty" doc:"the resource's DOI, if it has one"`
}

// a response for an XML import request (POST)
type ImportResponse struct {
	// id of the stored draft awaiting editor review
	DraftId uuid.UUID `json:"draft_id" doc:"a UUID for the stored import draft"`
	// every field extracted from the uploaded document, null when absent
	Record *datacite.Record `json:"record" doc:"the extracted metadata, with null for anything the document doesn't carry"`
}

// a response echoing a stored resource (GET/PUT)
type ResourceResponse = metadata.Resource

// MetadataService defines the interface for our metadata exchange service.
type MetadataService interface {
	// Starts the service on the selected port, returning an error that indicates
	// success or failure.
	Start(port int) error
	// Gracefully shuts down the service without interrupting active connections.
	Shutdown(ctx context.Context) error
	// Closes down the service, freeing all resources.
	Close()
}
