package geo

import "math"

// KmPerDegreeLat is the approximate north-south span of one degree of
// latitude, used for cheap bounding-box filtering.
const KmPerDegreeLat = 111.0

// EarthRadiusKm is the mean radius of Earth used for Haversine distance.
const EarthRadiusKm = 6371.0

// DefaultRadiusKm is applied when coordinates are given without a radius.
const DefaultRadiusKm = 50.0

// Box is a latitude/longitude rectangle approximating a radius search.
type Box struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

// BoundingBox computes the rectangle of side 2*radiusKm centered on
// (lat, lon). Longitude degrees shrink with cos(lat); at the poles the
// longitude range degenerates to the full circle.
func BoundingBox(lat, lon, radiusKm float64) Box {
	latDelta := radiusKm / KmPerDegreeLat

	cosLat := math.Cos(lat * math.Pi / 180)
	lonDelta := 180.0
	if cosLat > 1e-9 {
		lonDelta = radiusKm / (KmPerDegreeLat * cosLat)
	}

	return Box{
		LatMin: lat - latDelta,
		LatMax: lat + latDelta,
		LonMin: lon - lonDelta,
		LonMax: lon + lonDelta,
	}
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

// Haversine returns the great-circle distance in kilometers between two
// points specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
