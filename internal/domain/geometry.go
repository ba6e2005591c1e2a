package domain

import "math"

// Vec3 - точка в мировых координатах. Y - высота, плоскость пола - X/Z.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// PlanarLen - длина вектора в плоскости пола.
func (v Vec3) PlanarLen() float64 {
	return math.Hypot(v.X, v.Z)
}

// PlanarDistance - расстояние между точками без учета высоты.
// Все проверки размещения и близости работают в плоскости пола.
func PlanarDistance(a, b Vec3) float64 {
	return a.Sub(b).PlanarLen()
}
