package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"pathfinder/pkg/datastructure"
	"pathfinder/pkg/server"
	"pathfinder/pkg/server/rest/service"
	"pathfinder/pkg/snap"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	ShortestPathETA(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
		mode datastructure.TravelMode, hour int) (service.RouteSummary, error)
	NearestNodes(ctx context.Context, lat, lon float64, radiusKm float64, k int) ([]snap.NodeWithDistance, error)
}

type NavigationHandler struct {
	svc NavigationService
}

func NavigatorRouter(r *chi.Mux, svc NavigationService) {
	handler := &NavigationHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.ShortestPath)
			r.Post("/nearest-nodes", handler.NearestNodes)
		})
	})
}

// ShortestPathRequest model info
//
//	@Description	request body for a shortest path query between two coordinates
type ShortestPathRequest struct {
	SrcLat float64 `json:"src_lat" validate:"lt=90,gt=-90"`
	SrcLon float64 `json:"src_lon" validate:"lt=180,gt=-180"`
	DstLat float64 `json:"dst_lat" validate:"lt=90,gt=-90"`
	DstLon float64 `json:"dst_lon" validate:"lt=180,gt=-180"`
	Mode   string  `json:"mode" validate:"required,oneof=car walk bike"`
	// local hour of day for the traffic estimate, 0-23
	Hour *int `json:"hour" validate:"omitempty,gte=0,lte=23"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	if s.Mode == "" {
		return errors.New("invalid request")
	}
	return nil
}

// TrafficInfo model info
//
//	@Description	simulated traffic condition applied to the base travel time
type TrafficInfo struct {
	Window          string  `json:"window"`
	Multiplier      float64 `json:"multiplier"`
	AdjustedMinutes int     `json:"adjusted_minutes"`
}

// ShortestPathResponse model info
//
//	@Description	response body for a shortest path query
type ShortestPathResponse struct {
	Path        string                     `json:"path"`
	Coordinates []datastructure.Coordinate `json:"coordinates"`
	DistanceKm  float64                    `json:"distance_km"`
	ETAMinutes  int                        `json:"eta_minutes"`
	Mode        string                     `json:"mode"`
	Traffic     TrafficInfo                `json:"traffic"`
	FuelLiters  *float64                   `json:"fuel_liters,omitempty"`
}

func RenderShortestPathResponse(summary service.RouteSummary) *ShortestPathResponse {
	resp := &ShortestPathResponse{
		Path:        summary.Polyline,
		Coordinates: summary.Route.Coordinates,
		DistanceKm:  summary.Route.DistKmRounded(),
		ETAMinutes:  summary.Route.BaseTimeMinutes,
		Mode:        summary.Route.Mode.String(),
		Traffic: TrafficInfo{
			Window:          summary.TrafficWindow.String(),
			Multiplier:      summary.TrafficMultiplier,
			AdjustedMinutes: summary.AdjustedTimeMinutes,
		},
	}
	if summary.Route.Mode == datastructure.TravelModeCar {
		fuel := summary.FuelLiters
		resp.FuelLiters = &fuel
	}
	return resp
}

// ShortestPath
//
//	@Summary		shortest route between two coordinates using A* over the loaded road network
//	@Description	snaps both endpoints to the nearest graph node, runs A* weighted by road segment length, and returns the route geometry with distance, travel time and a simulated traffic adjustment
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body for the shortest path query"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := validateStruct(w, r, data); err != nil {
		return
	}

	mode, err := datastructure.ParseTravelMode(data.Mode)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	hour := 12
	if data.Hour != nil {
		hour = *data.Hour
	}

	summary, err := h.svc.ShortestPathETA(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon, mode, hour)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderShortestPathResponse(summary))
}

// NearestNodesRequest model info
//
//	@Description	request body for a nearest road network node lookup
type NearestNodesRequest struct {
	Lat      float64 `json:"lat" validate:"lt=90,gt=-90"`
	Lon      float64 `json:"lon" validate:"lt=180,gt=-180"`
	RadiusKm float64 `json:"radius_km"`
	K        int     `json:"k"`
}

func (s *NearestNodesRequest) Bind(r *http.Request) error {
	if s.RadiusKm == 0 || s.K == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// NearestNodesResponse model info
//
//	@Description	response body for a nearest node lookup
type NearestNodesResponse struct {
	Nodes []struct {
		Node       datastructure.Node `json:"node"`
		DistanceKm float64            `json:"distance_km"`
	} `json:"nodes"`
}

func RenderNearestNodesResponse(nodes []snap.NodeWithDistance) *NearestNodesResponse {
	nodesResp := make([]struct {
		Node       datastructure.Node `json:"node"`
		DistanceKm float64            `json:"distance_km"`
	}, 0, len(nodes))
	for _, n := range nodes {
		nodesResp = append(nodesResp, struct {
			Node       datastructure.Node `json:"node"`
			DistanceKm float64            `json:"distance_km"`
		}{
			Node:       n.Node,
			DistanceKm: n.DistKm,
		})
	}
	return &NearestNodesResponse{
		Nodes: nodesResp,
	}
}

// NearestNodes
//
//	@Summary		nearest road network nodes around a coordinate
//	@Description	returns up to k graph nodes within the given radius of the query point, closest first
//	@Tags			navigations
//	@Param			body	body	NearestNodesRequest	true	"request body for the nearest node lookup"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/nearest-nodes [post]
//	@Success		200	{object}	NearestNodesResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) NearestNodes(w http.ResponseWriter, r *http.Request) {
	data := &NearestNodesRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := validateStruct(w, r, data); err != nil {
		return
	}

	nodes, err := h.svc.NearestNodes(r.Context(), data.Lat, data.Lon, data.RadiusKm, data.K)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderNearestNodesResponse(nodes))
}

// validateStruct validates the bound request and renders the translated
// validation errors itself; a non-nil return means the response has already
// been written.
func validateStruct(w http.ResponseWriter, r *http.Request, data interface{}) error {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return err
	}
	return nil
}

func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *server.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Code() {
		case server.ErrNotFound:
			render.Render(w, r, ErrNotFoundRend(svcErr))
			return
		case server.ErrBadParamInput:
			render.Render(w, r, ErrInvalidRequest(svcErr))
			return
		}
	}
	render.Render(w, r, ErrInternalServerErrorRend(errors.New("internal server error")))
}

// ErrResponse model info
//
//	@Description	model for the error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFoundRend(err *server.Error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 404,
		StatusText:     "Resource not found.",
		ErrorText:      err.Message(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
