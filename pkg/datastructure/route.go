package datastructure

import (
	"fmt"

	"pathfinder/pkg/util"
)

// TravelMode selects the reference speed used for time estimates.
type TravelMode int

const (
	TravelModeCar TravelMode = iota
	TravelModeWalk
	TravelModeBike
)

// reference speeds in km/h, fixed per mode.
var travelModeSpeeds = map[TravelMode]float64{
	TravelModeCar:  50,
	TravelModeWalk: 5,
	TravelModeBike: 15,
}

func (m TravelMode) SpeedKmh() float64 {
	return travelModeSpeeds[m]
}

func (m TravelMode) String() string {
	switch m {
	case TravelModeCar:
		return "car"
	case TravelModeWalk:
		return "walk"
	case TravelModeBike:
		return "bike"
	}
	return "unknown"
}

func ParseTravelMode(s string) (TravelMode, error) {
	switch s {
	case "car":
		return TravelModeCar, nil
	case "walk":
		return TravelModeWalk, nil
	case "bike":
		return TravelModeBike, nil
	}
	return 0, fmt.Errorf("unknown travel mode %q", s)
}

// Route is the result of one routing query: ordered path geometry, total
// great-circle distance in km (unrounded, see DistKmRounded for the display
// value), and the base travel time estimate in minutes before any traffic
// adjustment.
type Route struct {
	Coordinates     []Coordinate `json:"coordinates"`
	Dist            float64      `json:"-"`
	BaseTimeMinutes int          `json:"eta_minutes"`
	Mode            TravelMode   `json:"-"`
}

// DistKmRounded is the display distance, rounded to 2 decimal places. The
// unrounded Dist stays available for downstream computation.
func (r Route) DistKmRounded() float64 {
	return util.RoundFloat(r.Dist, 2)
}

// Polyline encodes the route geometry for the rendering layer.
func (r Route) Polyline() string {
	return CreatePolyline(r.Coordinates)
}

