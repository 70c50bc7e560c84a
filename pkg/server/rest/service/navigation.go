package service

import (
	"context"
	"errors"

	"pathfinder/pkg/datastructure"
	"pathfinder/pkg/engine/routingalgorithm"
	"pathfinder/pkg/engine/traffic"
	"pathfinder/pkg/server"
	"pathfinder/pkg/snap"
	"pathfinder/pkg/util"
)

type Snapper interface {
	NearestNode(lat, lon float64) (int32, error)
	NearestNodesWithinRadius(lat, lon float64, radiusKm float64, k int) ([]snap.NodeWithDistance, error)
}

type RoutingAlgorithm interface {
	ShortestPathAStar(ctx context.Context, from, to int32) ([]int32, float64, error)
}

type RouteBuilder interface {
	Build(nodePath []int32, mode datastructure.TravelMode) (datastructure.Route, error)
}

// fuel estimate for car routes, 8 liter per 100 km.
const fuelLitersPerKm = 0.08

// RouteSummary is everything one routing query produces for the caller:
// geometry, distance, base time, the traffic-adjusted time, and the fuel
// estimate for car routes.
type RouteSummary struct {
	Route               datastructure.Route
	Polyline            string
	TrafficWindow       traffic.Window
	TrafficMultiplier   float64
	AdjustedTimeMinutes int
	FuelLiters          float64
}

type NavigationService struct {
	snapper Snapper
	routing RoutingAlgorithm
	builder RouteBuilder
}

func NewNavigationService(snapper Snapper, routing RoutingAlgorithm, builder RouteBuilder) *NavigationService {
	return &NavigationService{
		snapper: snapper,
		routing: routing,
		builder: builder,
	}
}

// ShortestPathETA snaps both endpoints onto the road network, runs the A*
// search between the snapped nodes and assembles the route with its traffic
// adjusted time estimate. hour is the caller-supplied local hour of day.
func (uc *NavigationService) ShortestPathETA(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
	mode datastructure.TravelMode, hour int) (RouteSummary, error) {

	fromNode, err := uc.snapper.NearestNode(srcLat, srcLon)
	if err != nil {
		return RouteSummary{}, server.WrapErrorf(err, server.ErrInternalServerError, "no road network loaded")
	}
	toNode, err := uc.snapper.NearestNode(dstLat, dstLon)
	if err != nil {
		return RouteSummary{}, server.WrapErrorf(err, server.ErrInternalServerError, "no road network loaded")
	}

	nodePath, _, err := uc.routing.ShortestPathAStar(ctx, fromNode, toNode)
	if errors.Is(err, routingalgorithm.ErrNoPathFound) {
		return RouteSummary{}, server.WrapErrorf(err, server.ErrNotFound, "no route available between these points")
	}
	if err != nil {
		return RouteSummary{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	route, err := uc.builder.Build(nodePath, mode)
	if err != nil {
		return RouteSummary{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	window, multiplier, adjusted, err := traffic.Adjust(float64(route.BaseTimeMinutes), hour)
	if err != nil {
		return RouteSummary{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid hour of day")
	}

	summary := RouteSummary{
		Route:               route,
		Polyline:            route.Polyline(),
		TrafficWindow:       window,
		TrafficMultiplier:   multiplier,
		AdjustedTimeMinutes: adjusted,
	}
	if mode == datastructure.TravelModeCar {
		summary.FuelLiters = util.RoundFloat(route.Dist*fuelLitersPerKm, 2)
	}
	return summary, nil
}

// NearestNodes returns up to k graph nodes within radiusKm of the query
// point, closest first.
func (uc *NavigationService) NearestNodes(ctx context.Context, lat, lon float64, radiusKm float64, k int) ([]snap.NodeWithDistance, error) {
	if radiusKm <= 0 || k <= 0 {
		return nil, server.NewErrorf(server.ErrBadParamInput, "radius and result limit must be positive")
	}

	nodes, err := uc.snapper.NearestNodesWithinRadius(lat, lon, radiusKm, k)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "no road network loaded")
	}
	return nodes, nil
}
