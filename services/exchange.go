// Package services implements the REST surface of the metadata exchange
// service: resource curation, DataCite XML/JSON export, and XML import.
package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/gfz-metadata/mex/auth"
	"github.com/gfz-metadata/mex/config"
	"github.com/gfz-metadata/mex/core"
	"github.com/gfz-metadata/mex/datacite"
	"github.com/gfz-metadata/mex/labs"
	"github.com/gfz-metadata/mex/metadata"
	"github.com/gfz-metadata/mex/store"
)

// This type implements the MetadataService interface, serving curated
// resources and their DataCite renditions.
type exchange struct {
	// name of the service
	Name string
	// service version identifier
	Version string
	// port on which the service currently runs
	Port int
	// router for REST endpoints
	Router *mux.Router
	// API wrapper
	API huma.API
	// HTTP server.
	Server *http.Server

	// access token authenticator
	Auth *auth.Authenticator
	// persisted resources, drafts, and journal
	Store *store.Store
	// laboratory registry used to enrich imports (nil when not configured)
	Labs datacite.LaboratoryResolver
	// institutional defaults applied on export
	Defaults datacite.Defaults
}

// authorize clients for the service, returning the client's user record and
// an error describing any issue encountered
func (service *exchange) authorize(authorizationHeader string) (auth.User, error) {
	b64Token, ok := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !ok || b64Token == "" {
		return auth.User{}, huma.Error401Unauthorized("Invalid authorization header")
	}
	accessTokenBytes, err := base64.StdEncoding.DecodeString(b64Token)
	if err != nil {
		return auth.User{}, huma.Error401Unauthorized(err.Error())
	}
	accessToken := strings.TrimSpace(string(accessTokenBytes))

	user, err := service.Auth.GetUser(accessToken)
	if err != nil {
		return auth.User{}, huma.Error401Unauthorized(err.Error())
	}
	return user, nil
}

type ServiceInfoOutput struct {
	Body ServiceInfoResponse `doc:"information about the service itself"`
}

// handler method for root (no authorization needed for this one)
func (service *exchange) getRoot(ctx context.Context,
	input *struct{}) (*ServiceInfoOutput, error) {

	slog.Info("Querying root endpoint...")
	return &ServiceInfoOutput{
		Body: ServiceInfoResponse{
			Name:          service.Name,
			Version:       service.Version,
			Uptime:        int(core.Uptime()),
			Documentation: "/docs",
		},
	}, nil
}

type ResourceListOutput struct {
	Body ResourceListResponse `doc:"A listing of all stored resources"`
}

// handler method for listing all stored resources
func (service *exchange) getResources(ctx context.Context,
	input *struct {
		Authorization string `header:"authorization" doc:"Authorization header with encoded access token"`
	}) (*ResourceListOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	slog.Info("Querying stored resources...")
	entries, err := service.Store.Resources(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]store.ResourceEntry, 0)
	}
	return &ResourceListOutput{
		Body: ResourceListResponse{Resources: entries},
	}, nil
}

type ResourceOutput struct {
	Body ResourceResponse `doc:"The requested resource"`
}

// handler method for fetching a single resource
func (service *exchange) getResource(ctx context.Context,
	input *struct {
		Authorization string `header:"authorization" doc:"Authorization header with encoded access token"`
		Id            int    `path:"id" example:"42" doc:"the id of a stored resource"`
	}) (*ResourceOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	slog.Info(fmt.Sprintf("Querying resource %d...", input.Id))
	resource, err := service.fetchResource(ctx, input.Id)
	if err != nil {
		return nil, err
	}
	return &ResourceOutput{Body: *resource}, nil
}

type SaveOutput struct {
	Body SaveResponse `doc:"The id and DOI of the saved resource"`
}

// handler method for saving a resource; the save is strict, so a resource
// violating a vocabulary or URL constraint is rejected outright
func (service *exchange) putResource(ctx context.Context,
	input *struct {
		Authorization string            `header:"Authorization" doc:"Authorization header with encoded access token"`
		Id            int               `path:"id" example:"42" doc:"the id under which to save the resource"`
		Body          metadata.Resource `doc:"the resource to save"`
		ContentType   string            `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*SaveOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	resource := input.Body
	if err := resource.Validate(); err != nil {
		var verr *metadata.ValidationError
		if errors.As(err, &verr) {
			return nil, huma.Error422UnprocessableEntity("Resource failed validation",
				&huma.ErrorDetail{Location: verr.Field, Message: verr.Message})
		}
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	slog.Info(fmt.Sprintf("Saving resource %d...", input.Id))
	if err := service.Store.SaveResource(ctx, input.Id, &resource); err != nil {
		return nil, err
	}
	return &SaveOutput{
		Body: SaveResponse{Id: input.Id, Doi: resource.Doi},
	}, nil
}

type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// handler method for exporting a resource as a DataCite XML document
func (service *exchange) exportXML(ctx context.Context,
	input *struct {
		Authorization string `header:"authorization" doc:"Authorization header with encoded access token"`
		Id            int    `path:"id" example:"42" doc:"the id of a stored resource"`
	}) (*ExportOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	slog.Info(fmt.Sprintf("Exporting resource %d as DataCite XML...", input.Id))
	resource, err := service.fetchResource(ctx, input.Id)
	if err != nil {
		return nil, err
	}
	document, err := datacite.MarshalXML(resource, service.Defaults)
	if err != nil {
		return nil, err
	}
	if err := service.Store.LogExport(ctx, input.Id, "datacite.xml"); err != nil {
		return nil, err
	}
	return &ExportOutput{
		ContentType:        "application/xml",
		ContentDisposition: exportDisposition(input.Id, "xml"),
		Body:               document,
	}, nil
}

// handler method for exporting a resource as a DataCite JSON document
func (service *exchange) exportJSON(ctx context.Context,
	input *struct {
		Authorization string `header:"authorization" doc:"Authorization header with encoded access token"`
		Id            int    `path:"id" example:"42" doc:"the id of a stored resource"`
	}) (*ExportOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	slog.Info(fmt.Sprintf("Exporting resource %d as DataCite JSON...", input.Id))
	resource, err := service.fetchResource(ctx, input.Id)
	if err != nil {
		return nil, err
	}
	document, err := datacite.MarshalJSON(resource, service.Defaults)
	if err != nil {
		return nil, err
	}
	if err := service.Store.LogExport(ctx, input.Id, "datacite.json"); err != nil {
		return nil, err
	}
	return &ExportOutput{
		ContentType:        "application/json",
		ContentDisposition: exportDisposition(input.Id, "json"),
		Body:               document,
	}, nil
}

// exportDisposition builds the attachment filename for an export:
// resource-{id}-{YmdHis}-datacite.{format}
func exportDisposition(id int, format string) string {
	return fmt.Sprintf(`attachment; filename="resource-%d-%s-datacite.%s"`,
		id, time.Now().Format("20060102150405"), format)
}

// the single expected field of an import's multipart form
type ImportFormData struct {
	File huma.FormFile `form:"file" required:"true" doc:"a DataCite XML document"`
}

type ImportOutput struct {
	Body   ImportResponse `doc:"The stored draft id and every field extracted from the document"`
	Status int
}

// handler method for importing a third-party DataCite XML document; the
// import is permissive, so anything well-formed with a resource element is
// accepted and handed back for review
func (service *exchange) createImport(ctx context.Context,
	input *struct {
		Authorization string                                   `header:"authorization" doc:"Authorization header with encoded access token"`
		RawBody       huma.MultipartFormFiles[ImportFormData] `contentType:"multipart/form-data"`
	}) (*ImportOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	file := input.RawBody.Data().File
	if !strings.EqualFold(filepath.Ext(file.Filename), ".xml") {
		return nil, huma.Error422UnprocessableEntity("Unsupported upload",
			&huma.ErrorDetail{
				Location: "file",
				Message:  fmt.Sprintf("Only .xml documents can be imported (got %s)", file.Filename),
			})
	}
	if file.Size > config.Service.MaxImportBytes {
		return nil, huma.Error422UnprocessableEntity("Upload too large",
			&huma.ErrorDetail{
				Location: "file",
				Message: fmt.Sprintf("Document exceeds the %d byte limit",
					config.Service.MaxImportBytes),
			})
	}
	document, err := io.ReadAll(io.LimitReader(file, config.Service.MaxImportBytes))
	if err != nil {
		return nil, err
	}

	slog.Info(fmt.Sprintf("Importing DataCite document %s...", file.Filename))
	record, err := datacite.Read(document, service.Labs)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Unreadable document",
			&huma.ErrorDetail{Location: "file", Message: err.Error()})
	}

	draftId, err := service.Store.SaveDraft(ctx, record)
	if err != nil {
		return nil, err
	}
	return &ImportOutput{
		Body:   ImportResponse{DraftId: draftId, Record: record},
		Status: http.StatusCreated,
	}, nil
}

// fetchResource loads a resource from the store, translating a missing id
// into a 404.
func (service *exchange) fetchResource(ctx context.Context,
	id int) (*metadata.Resource, error) {

	resource, err := service.Store.Resource(ctx, id)
	if err != nil {
		var notFound store.NotFoundError
		if errors.As(err, &notFound) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, err
	}
	return resource, nil
}

// constructs a metadata exchange service given our configuration
func NewExchangeService() (MetadataService, error) {

	service := new(exchange)
	service.Name = "MEX metadata exchange"
	service.Version = core.Version
	service.Port = -1
	service.Defaults = datacite.Defaults{
		PublisherName:  config.Publisher.Name,
		PublisherRorId: config.Publisher.RorId,
	}

	var err error
	service.Auth, err = auth.NewAuthenticator()
	if err != nil {
		return nil, err
	}
	service.Store, err = store.NewStore()
	if err != nil {
		return nil, err
	}
	if config.Laboratories.URL != "" {
		registry, err := labs.NewRegistry()
		if err != nil {
			service.Store.Close()
			return nil, err
		}
		service.Labs = registry
	}

	// set up routing
	service.Router = mux.NewRouter()
	api := humamux.New(service.Router, huma.DefaultConfig(service.Name, service.Version))
	huma.Get(api, "/", service.getRoot)

	// API v1
	huma.Get(api, "/api/v1/resources", service.getResources)
	huma.Get(api, "/api/v1/resources/{id}", service.getResource)
	huma.Put(api, "/api/v1/resources/{id}", service.putResource)
	huma.Get(api, "/api/v1/resources/{id}/datacite.xml", service.exportXML)
	huma.Get(api, "/api/v1/resources/{id}/datacite.json", service.exportJSON)
	huma.Post(api, "/api/v1/imports", service.createImport)
	service.API = api

	return service, nil
}

// starts the metadata exchange service
func (service *exchange) Start(port int) error {
	slog.Info(fmt.Sprintf("Starting %s service on port %d...", service.Name, port))
	slog.Info(fmt.Sprintf("(Accepting up to %d connections)", config.Service.MaxConnections))

	// create a listener that limits the number of incoming connections
	service.Port = port
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return err
	}
	defer listener.Close()
	listener = netutil.LimitListener(listener, config.Service.MaxConnections)

	// start the server
	service.Server = &http.Server{
		Handler: service.Router}
	err = service.Server.Serve(listener)

	// we don't report the server closing as an error
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

// gracefully shuts down the service without interrupting active connections
func (service *exchange) Shutdown(ctx context.Context) error {
	if service.Server != nil {
		err := service.Server.Shutdown(ctx)
		service.Store.Close()
		return err
	}
	service.Store.Close()
	return nil
}

// closes down the service abruptly, freeing all resources
func (service *exchange) Close() {
	if service.Server != nil {
		service.Server.Close()
	}
	service.Store.Close()
}
