package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading spec: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			swaggerErr = fmt.Errorf("invalid spec: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}

// GetGraphParams are the query parameters of GET /graph.
type GetGraphParams struct {
	Format *string `form:"format,omitempty" json:"format,omitempty"`
}

// GetBridgesParams are the query parameters of GET /bridges.
type GetBridgesParams struct {
	From string `form:"from" json:"from"`
	To   string `form:"to" json:"to"`
}

// GetPathsParams are the query parameters of GET /paths.
type GetPathsParams struct {
	From string  `form:"from" json:"from"`
	To   *string `form:"to,omitempty" json:"to,omitempty"`
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Text string `json:"text"`
}

// GenerateResponse is the answer of POST /generate.
type GenerateResponse struct {
	Text string `json:"text"`
}

// ServerInterface lists one handler per operation of openapi.yaml.
type ServerInterface interface {
	GetGraph(w http.ResponseWriter, r *http.Request, params GetGraphParams)
	GetGraphDot(w http.ResponseWriter, r *http.Request)
	GetBridges(w http.ResponseWriter, r *http.Request, params GetBridgesParams)
	GenerateText(w http.ResponseWriter, r *http.Request)
	GetPaths(w http.ResponseWriter, r *http.Request, params GetPathsParams)
	ListWalks(w http.ResponseWriter, r *http.Request)
	GetWalk(w http.ResponseWriter, r *http.Request, id string)
	DeleteWalk(w http.ResponseWriter, r *http.Request, id string)
	StepWalk(w http.ResponseWriter, r *http.Request, id string)
	RunWalk(w http.ResponseWriter, r *http.Request, id string)
	GetWalkTrace(w http.ResponseWriter, r *http.Request, id string)
	GetHealth(w http.ResponseWriter, r *http.Request)
	GetInfo(w http.ResponseWriter, r *http.Request)
}

// ParamError reports a parameter that failed to bind.
type ParamError struct {
	Name string
	Err  error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %v", e.Name, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// wrapper binds parameters and dispatches to the ServerInterface.
type wrapper struct {
	handler ServerInterface
	onError func(w http.ResponseWriter, r *http.Request, err error)
}

func (wr *wrapper) getGraph(w http.ResponseWriter, r *http.Request) {
	var params GetGraphParams
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &params.Format); err != nil {
		wr.onError(w, r, &ParamError{Name: "format", Err: err})
		return
	}
	wr.handler.GetGraph(w, r, params)
}

func (wr *wrapper) getBridges(w http.ResponseWriter, r *http.Request) {
	var params GetBridgesParams
	if err := runtime.BindQueryParameter("form", true, true, "from", r.URL.Query(), &params.From); err != nil {
		wr.onError(w, r, &ParamError{Name: "from", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "to", r.URL.Query(), &params.To); err != nil {
		wr.onError(w, r, &ParamError{Name: "to", Err: err})
		return
	}
	wr.handler.GetBridges(w, r, params)
}

func (wr *wrapper) getPaths(w http.ResponseWriter, r *http.Request) {
	var params GetPathsParams
	if err := runtime.BindQueryParameter("form", true, true, "from", r.URL.Query(), &params.From); err != nil {
		wr.onError(w, r, &ParamError{Name: "from", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", r.URL.Query(), &params.To); err != nil {
		wr.onError(w, r, &ParamError{Name: "to", Err: err})
		return
	}
	wr.handler.GetPaths(w, r, params)
}

// withID binds the {id} path parameter.
func (wr *wrapper) withID(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			wr.onError(w, r, &ParamError{Name: "id", Err: err})
			return
		}
		if err := domain.ValidateSessionID(id); err != nil {
			wr.onError(w, r, &ParamError{Name: "id", Err: err})
			return
		}
		fn(w, r, id)
	}
}

// HandlerFromMux registers every operation on r.
func HandlerFromMux(si ServerInterface, r chi.Router, onError func(http.ResponseWriter, *http.Request, error)) http.Handler {
	wr := &wrapper{handler: si, onError: onError}

	r.Get("/graph", wr.getGraph)
	r.Get("/graph.dot", si.GetGraphDot)
	r.Get("/bridges", wr.getBridges)
	r.Post("/generate", si.GenerateText)
	r.Get("/paths", wr.getPaths)
	r.Get("/walks", si.ListWalks)
	r.Get("/walks/{id}", wr.withID(si.GetWalk))
	r.Delete("/walks/{id}", wr.withID(si.DeleteWalk))
	r.Post("/walks/{id}/step", wr.withID(si.StepWalk))
	r.Post("/walks/{id}/run", wr.withID(si.RunWalk))
	r.Get("/walks/{id}/trace", wr.withID(si.GetWalkTrace))
	r.Get("/healthz", si.GetHealth)
	r.Get("/info", si.GetInfo)

	return r
}
