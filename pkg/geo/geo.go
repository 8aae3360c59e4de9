// Package geo는 검색 필터에 쓰이는 거리/범위 계산을 제공한다.
package geo

import (
	"errors"
	"math"
)

const (
	EarthRadiusMeters = 6371000.0
	EarthRadiusKm     = EarthRadiusMeters / 1000

	// 좌표가 없을 때 반환하는 "아주 먼" 거리
	UnknownDistanceMeters = 99999999
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Box struct {
	LatMin float64 `json:"lat_min"`
	LngMin float64 `json:"lng_min"`
	LatMax float64 `json:"lat_max"`
	LngMax float64 `json:"lng_max"`
}

func (b Box) Contains(p Point) bool {
	return p.Lat >= b.LatMin && p.Lat <= b.LatMax && p.Lng >= b.LngMin && p.Lng <= b.LngMax
}

// (0,0)은 위치 미등록으로 취급
func Valid(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return false
	}
	return !(lat == 0 && lng == 0)
}

// 두 지점 사이의 haversine 거리 (미터)
func DistanceMeters(p1, p2 Point) int {
	lat1 := toRad(p1.Lat)
	lat2 := toRad(p2.Lat)
	dLat := lat2 - lat1
	dLng := toRad(p2.Lng - p1.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(EarthRadiusMeters * c)
}

// 좌표가 하나라도 없으면 UnknownDistanceMeters
func DistanceOrUnknown(p1, p2 Point) int {
	if !Valid(p1.Lat, p1.Lng) || !Valid(p2.Lat, p2.Lng) {
		return UnknownDistanceMeters
	}
	return DistanceMeters(p1, p2)
}

// 시작점에서 bearing 방향으로 distanceKm 만큼 이동한 지점
func Destination(p Point, bearingDeg, distanceKm float64) Point {
	lat1 := toRad(p.Lat)
	lng1 := toRad(p.Lng)
	brng := toRad(bearingDeg)
	d := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lng2 := lng1 + math.Atan2(
		math.Sin(brng)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)
	return Point{Lat: toDeg(lat2), Lng: toDeg(lng2)}
}

// BoundingBox는 반경 radiusKm 원을 항상 포함하는 사각형을 반환한다.
// 위도는 0/180도 목적지 점으로 정확히 정해지고, 경도는 90/270도 목적지 점과
// 원의 접선 경도 중 넓은 쪽을 쓴다. 극점이나 날짜변경선에 걸리면 경도 전체를 쓴다.
func BoundingBox(lat, lng, radiusKm float64) (Box, error) {
	if !Valid(lat, lng) || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return Box{}, ErrInvalidCoordinates
	}

	center := Point{Lat: lat, Lng: lng}
	north := Destination(center, 0, radiusKm)
	east := Destination(center, 90, radiusKm)
	south := Destination(center, 180, radiusKm)
	west := Destination(center, 270, radiusKm)

	box := Box{
		LatMin: math.Min(south.Lat, math.Min(east.Lat, west.Lat)),
		LatMax: math.Max(north.Lat, math.Max(east.Lat, west.Lat)),
		LngMin: west.Lng,
		LngMax: east.Lng,
	}

	d := radiusKm / EarthRadiusKm
	latRad := toRad(lat)

	// 원이 극점을 포함하는 경우
	if latRad+d >= math.Pi/2 || latRad-d <= -math.Pi/2 || d >= math.Pi/2 {
		box.LatMin = math.Max(toDeg(latRad-d), -90)
		box.LatMax = math.Min(toDeg(latRad+d), 90)
		box.LngMin, box.LngMax = -180, 180
		return box, nil
	}

	tangent := toDeg(math.Asin(math.Sin(d) / math.Cos(latRad)))
	box.LngMin = math.Min(box.LngMin, lng-tangent)
	box.LngMax = math.Max(box.LngMax, lng+tangent)

	if box.LngMin < -180 || box.LngMax > 180 {
		box.LngMin, box.LngMax = -180, 180
	}
	return box, nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
