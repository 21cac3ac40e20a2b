package boundary

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/storage"
)

// Service stores and evaluates game-area boundaries. A boundary is a GeoJSON
// FeatureCollection with a single polygon feature; it is stored verbatim so
// clients get back exactly what the host drew.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new boundary Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Set validates and persists the boundary for a game, replacing any
// previous one.
func (s *Service) Set(ctx context.Context, gameID model.GameID, raw json.RawMessage) error {
	if _, err := firstPolygon(raw); err != nil {
		return err
	}
	if err := s.storage.SaveBoundary(ctx, gameID, raw); err != nil {
		return err
	}
	s.logger.Info("boundary saved", slog.String("game_id", string(gameID)))
	return nil
}

// Get returns the stored boundary GeoJSON, or nil when none is configured
func (s *Service) Get(ctx context.Context, gameID model.GameID) (json.RawMessage, error) {
	raw, err := s.storage.GetBoundary(ctx, gameID)
	if errors.Is(err, model.ErrBoundaryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Contains reports whether the point lies inside the game's boundary.
// Without a configured boundary it reports true: players must not be locked
// out before the host has drawn an area. Only the first feature counts.
func (s *Service) Contains(ctx context.Context, gameID model.GameID, lat, lng float64) (bool, error) {
	raw, err := s.Get(ctx, gameID)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return true, nil
	}
	return ContainsPoint(raw, lat, lng)
}

// ContainsPoint tests a (lat, lng) point against raw boundary GeoJSON.
// The coordinates flip to GeoJSON (lng, lat) order for the geometry test.
func ContainsPoint(raw json.RawMessage, lat, lng float64) (bool, error) {
	polygon, err := firstPolygon(raw)
	if err != nil {
		return false, err
	}

	point := orb.Point{lng, lat}
	switch g := polygon.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, point), nil
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, point), nil
	default:
		return false, model.ErrInvalidBoundary
	}
}

// Circle approximates a circular game area as a polygon feature collection,
// the same shape the map UI produces when the host picks the circle tool.
// Radius is in meters; steps is the number of polygon vertices.
func Circle(centerLat, centerLng, radiusMeters float64, steps int) json.RawMessage {
	if steps < 3 {
		steps = 64
	}

	center := orb.Point{centerLng, centerLat}
	ring := make(orb.Ring, 0, steps+1)
	for i := 0; i < steps; i++ {
		bearing := float64(i) * 360.0 / float64(steps)
		ring = append(ring, geo.PointAtBearingAndDistance(center, bearing, radiusMeters))
	}
	ring = append(ring, ring[0]) // close the ring

	feature := geojson.NewFeature(orb.Polygon{ring})
	feature.Properties["mode"] = "circle"

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)

	raw, _ := fc.MarshalJSON()
	return raw
}

// Distance returns the great-circle distance in meters between two
// (lat, lng) points.
func Distance(aLat, aLng, bLat, bLng float64) float64 {
	return geo.Distance(orb.Point{aLng, aLat}, orb.Point{bLng, bLat})
}

// firstPolygon decodes the boundary and extracts the polygonal geometry of
// its first feature. Extra features are ignored.
func firstPolygon(raw json.RawMessage) (orb.Geometry, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil || len(fc.Features) == 0 {
		// A bare feature (no collection wrapper) is accepted too
		feature, ferr := geojson.UnmarshalFeature(raw)
		if ferr != nil {
			return nil, model.ErrInvalidBoundary
		}
		return polygonalGeometry(feature.Geometry)
	}
	return polygonalGeometry(fc.Features[0].Geometry)
}

func polygonalGeometry(g orb.Geometry) (orb.Geometry, error) {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return g, nil
	default:
		return nil, model.ErrInvalidBoundary
	}
}
