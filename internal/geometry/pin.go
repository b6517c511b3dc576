package geometry

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"residence/server/internal/models"
)

// ErrOutsideImage is returned for clicks that miss the rendered image
var ErrOutsideImage = errors.New("click is outside of the image")

// ImagePercent converts a pointer position into percentages of the rendered
// image box. Screen coordinates grow downwards, so box.Min is the top left corner.
func ImagePercent(click orb.Point, box orb.Bound) (orb.Point, error) {
	width := box.Max.X() - box.Min.X()
	height := box.Max.Y() - box.Min.Y()
	if width <= 0 || height <= 0 {
		return orb.Point{}, errors.New("image box has no area")
	}
	if !box.Contains(click) {
		return orb.Point{}, ErrOutsideImage
	}

	x := (click.X() - box.Min.X()) / width * 100
	y := (click.Y() - box.Min.Y()) / height * 100
	return orb.Point{round2(x), round2(y)}, nil
}

// PixelPosition is the inverse of ImagePercent
func PixelPosition(percent orb.Point, box orb.Bound) orb.Point {
	return orb.Point{
		box.Min.X() + percent.X()/100*(box.Max.X()-box.Min.X()),
		box.Min.Y() + percent.Y()/100*(box.Max.Y()-box.Min.Y()),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PinsFeatureCollection exports pins as GeoJSON points in image percent space
func PinsFeatureCollection(items []models.InfrastructureItem) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, item := range items {
		f := geojson.NewFeature(orb.Point{item.X, item.Y})
		f.ID = item.ID
		f.Properties["type"] = string(item.Type)
		f.Properties["name"] = item.Name
		fc.Append(f)
	}
	return fc
}
