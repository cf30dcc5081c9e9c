/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"io"

	"isokml/internal/kml"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// buildFeatureCollection 为每个输出层生成一个 MultiLineString 要素，坐标为经纬度。
func buildFeatureCollection(doc kml.Document) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, lvl := range doc.Levels {
		lines := make(orb.MultiLineString, 0, len(lvl.Boundaries))
		for _, b := range lvl.Boundaries {
			lines = append(lines, orb.LineString(b.Ring))
		}
		f := geojson.NewFeature(lines)
		f.Properties["level"] = lvl.Index + 1
		f.Properties["value"] = lvl.Value
		f.Properties["color"] = lvl.Color
		f.Properties["name"] = lvl.Name(doc.Variable)
		fc.Append(f)
	}
	return fc
}

func writeGeoJSON(w io.Writer, doc kml.Document) error {
	data, err := buildFeatureCollection(doc).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
