// Package geodesy converts surveyed UTM coordinates into the geocentric
// ECEF frame used by the rest of the pipeline.
package geodesy

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// WGS84 ellipsoid parameters.
const (
	wgsA = 6378137.0           // Semi-major axis, meters
	wgsF = 1.0 / 298.257223563 // Flattening
)

// UTM projection constants.
const (
	utmScaleFactor  = 0.9996
	utmFalseEasting = 500000.0
)

// ErrInvalidZone is returned when a converter is constructed with a UTM
// zone outside 1-60.
var ErrInvalidZone = errors.New("geodesy: UTM zone out of range")

// Converter maps UTM-projected coordinates (WGS84 datum) to geocentric
// ECEF meters. It is immutable and safe to share between callers.
type Converter struct {
	zone          int
	centralMerRad float64
	eccSquared    float64
	eccPrimeSq    float64
	e1            float64
	meridianScale float64 // a*(1 - e2/4 - 3e4/64 - 5e6/256)
}

// NewConverter creates a converter bound to the given UTM zone (1-60,
// northern hemisphere).
func NewConverter(zone int) (*Converter, error) {
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidZone, zone)
	}

	e2 := wgsF * (2 - wgsF)
	e4 := e2 * e2
	e6 := e4 * e2
	sqrt1e2 := math.Sqrt(1 - e2)

	centralMeridianDeg := float64((zone-1)*6 - 180 + 3)

	return &Converter{
		zone:          zone,
		centralMerRad: centralMeridianDeg * math.Pi / 180,
		eccSquared:    e2,
		eccPrimeSq:    e2 / (1 - e2),
		e1:            (1 - sqrt1e2) / (1 + sqrt1e2),
		meridianScale: wgsA * (1 - e2/4 - 3*e4/64 - 5*e6/256),
	}, nil
}

// Zone returns the UTM zone this converter is bound to.
func (c *Converter) Zone() int {
	return c.zone
}

// Forward maps a UTM easting/northing/height triple to ECEF x/y/z meters.
func (c *Converter) Forward(easting, northing, height float64) mgl64.Vec3 {
	ll := c.toGeodetic(easting, northing)
	return geodeticToECEF(ll, height)
}

// toGeodetic inverts the transverse-mercator projection for this zone,
// returning geodetic latitude/longitude.
func (c *Converter) toGeodetic(easting, northing float64) s2.LatLng {
	x := easting - utmFalseEasting
	y := northing

	// Footpoint latitude from the rectifying latitude series.
	mu := y / utmScaleFactor / c.meridianScale
	e1 := c.e1
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	e2 := c.eccSquared
	ep2 := c.eccPrimeSq

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := wgsA / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := wgsA * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * utmScaleFactor)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	lat := phi1 - (n1*tanPhi1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d6/720)

	lon := c.centralMerRad + (d-
		(1+2*t1+c1)*d3/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d5/120)/cosPhi1

	return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lon)}
}

// geodeticToECEF maps a geodetic position plus ellipsoidal height to ECEF.
func geodeticToECEF(ll s2.LatLng, height float64) mgl64.Vec3 {
	lat := ll.Lat.Radians()
	lon := ll.Lng.Radians()
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	e2 := wgsF * (2 - wgsF)
	n := wgsA / math.Sqrt(1-e2*sinLat*sinLat)

	return mgl64.Vec3{
		(n + height) * cosLat * cosLon,
		(n + height) * cosLat * sinLon,
		(n*(1-e2) + height) * sinLat,
	}
}
