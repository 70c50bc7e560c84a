package osmparser

import (
	"testing"

	"pathfinder/pkg/datastructure"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// every travel mode must map onto a network type the parser accepts.
func TestNetworkTypeForMode(t *testing.T) {
	assert.Equal(t, "drive", NetworkTypeForMode(datastructure.TravelModeCar))
	assert.Equal(t, "walk", NetworkTypeForMode(datastructure.TravelModeWalk))
	assert.Equal(t, "walk", NetworkTypeForMode(datastructure.TravelModeBike))

	for _, mode := range []datastructure.TravelMode{
		datastructure.TravelModeCar, datastructure.TravelModeWalk, datastructure.TravelModeBike,
	} {
		_, err := NewOsmParser(NetworkTypeForMode(mode))
		assert.NoError(t, err)
	}
}

func TestNewOsmParserRejectsUnknownNetwork(t *testing.T) {
	_, err := NewOsmParser("rail")
	assert.Error(t, err)
}

func testWay(tags map[string]string) *osm.Way {
	way := &osm.Way{
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
	}
	for k, v := range tags {
		way.Tags = append(way.Tags, osm.Tag{Key: k, Value: v})
	}
	return way
}

func TestAcceptWay(t *testing.T) {
	drive, err := NewOsmParser("drive")
	require.NoError(t, err)
	walk, err := NewOsmParser("walk")
	require.NoError(t, err)

	assert.True(t, drive.acceptWay(testWay(map[string]string{"highway": "residential"})))
	assert.False(t, drive.acceptWay(testWay(map[string]string{"building": "yes"})))
	assert.False(t, drive.acceptWay(testWay(map[string]string{"highway": "footway"})))
	assert.False(t, drive.acceptWay(testWay(map[string]string{"highway": "residential", "area": "yes"})))
	assert.False(t, drive.acceptWay(testWay(map[string]string{"highway": "residential", "motor_vehicle": "no"})))

	assert.True(t, walk.acceptWay(testWay(map[string]string{"highway": "footway"})))
	assert.False(t, walk.acceptWay(testWay(map[string]string{"highway": "motorway"})))
	assert.False(t, walk.acceptWay(testWay(map[string]string{"highway": "residential", "foot": "no"})))
}

func TestWayDirections(t *testing.T) {
	drive, err := NewOsmParser("drive")
	require.NoError(t, err)
	walk, err := NewOsmParser("walk")
	require.NoError(t, err)

	forward, backward := drive.wayDirections(testWay(map[string]string{"highway": "residential"}))
	assert.True(t, forward)
	assert.True(t, backward)

	forward, backward = drive.wayDirections(testWay(map[string]string{"highway": "residential", "oneway": "yes"}))
	assert.True(t, forward)
	assert.False(t, backward)

	// digitized against the travel direction
	forward, backward = drive.wayDirections(testWay(map[string]string{"highway": "residential", "oneway": "-1"}))
	assert.False(t, forward)
	assert.True(t, backward)

	// oneway does not apply to foot traffic
	forward, backward = walk.wayDirections(testWay(map[string]string{"highway": "footway", "oneway": "yes"}))
	assert.True(t, forward)
	assert.True(t, backward)
}
