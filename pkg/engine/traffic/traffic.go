package traffic

import (
	"fmt"
	"math"
)

// Window is a time-of-day traffic category with a multiplicative delay
// factor. The mapping is a fixed simulation table, not live data.
type Window int

const (
	WindowLight Window = iota
	WindowModerate
	WindowHeavy
)

func (w Window) String() string {
	switch w {
	case WindowHeavy:
		return "Heavy"
	case WindowModerate:
		return "Moderate"
	}
	return "Light"
}

func (w Window) Multiplier() float64 {
	switch w {
	case WindowHeavy:
		return 1.5
	case WindowModerate:
		return 1.2
	}
	return 1.0
}

// WindowForHour buckets an hour of day (24h clock) into a traffic window.
// Rush hours 7-9 and 16-18 are heavy, the shoulders 10-11, 14-15 and 19-20
// moderate, everything else light.
func WindowForHour(hour int) (Window, error) {
	if hour < 0 || hour > 23 {
		return WindowLight, fmt.Errorf("hour %d outside 0-23", hour)
	}
	switch hour {
	case 7, 8, 9, 16, 17, 18:
		return WindowHeavy, nil
	case 10, 11, 14, 15, 19, 20:
		return WindowModerate, nil
	}
	return WindowLight, nil
}

// Adjust applies the window multiplier for the given hour to a base travel
// time in minutes. Pure function: identical inputs always produce identical
// outputs, there is no clock access here. The caller supplies the hour and
// decides its timezone semantics.
func Adjust(baseTimeMinutes float64, hour int) (Window, float64, int, error) {
	window, err := WindowForHour(hour)
	if err != nil {
		return WindowLight, 0, 0, err
	}
	multiplier := window.Multiplier()
	adjusted := int(math.Round(baseTimeMinutes * multiplier))
	return window, multiplier, adjusted, nil
}
