/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package kml

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"isokml/internal/domain"

	"github.com/paulmach/orb"
)

// GridPlacemarkName 是网格外框 Placemark 的名称。
const GridPlacemarkName = "Receptor's Grid"

// Document 描述一份等值面 KML 文档，坐标均为经纬度（度）。
type Document struct {
	Name     string    // Schema 与 Folder 名称
	Variable string    // 变量显示名
	Bound    orb.Bound // 网格外框
	Levels   []LevelPlacemark
}

// LevelPlacemark 是单层的输出内容，Boundaries 已完成投影转换。
type LevelPlacemark struct {
	Index      int
	Value      float64
	Color      string
	Boundaries []domain.Boundary
}

// Name 返回 Placemark 名称，序号从 1 开始。
func (p LevelPlacemark) Name(variable string) string {
	return fmt.Sprintf("Level %d: Conc(%s)=%s", p.Index+1, variable, FormatValue(p.Value))
}

// FormatValue 以最短的十进制形式输出数值，不使用科学计数法。
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteDocument 把文档写入 w。写入失败时返回第一个错误。
func WriteDocument(w io.Writer, doc Document) error {
	kw := &writer{w: bufio.NewWriter(w)}
	name := escape(doc.Name)

	kw.line(`<?xml version="1.0" encoding="UTF-8"?>`)
	kw.line(`<kml xmlns="http://www.opengis.net/kml/2.2">`)
	kw.line(`<Document id="root_doc">`)
	kw.writeSchema(name)
	kw.writeFailedStyles()
	kw.printf("<Folder><name>%s</name>\n", name)
	kw.writeGrid(name, doc.Bound)

	for _, lvl := range doc.Levels {
		kw.writeLevel(name, doc.Variable, lvl)
	}

	kw.line(`</Folder>`)
	kw.line(`</Document>`)
	kw.line(`</kml>`)
	return kw.flush()
}

func (kw *writer) writeSchema(name string) {
	kw.printf("<Schema name=\"%s\" id=\"%s\">\n", name, name)
	for _, f := range []string{"Primary", "Secondary", "ID3", "ID4"} {
		kw.printf("<SimpleField name=\"%s\" type=\"string\"></SimpleField>\n", f)
	}
	kw.line(`<SimpleField name="ZLEVEL" type="float"></SimpleField>`)
	kw.line(`</Schema>`)
}

func (kw *writer) writeFailedStyles() {
	for _, id := range []string{"failed", "failed0"} {
		kw.printf("<Style id=\"%s\">\n", id)
		kw.line("\t<LineStyle>\n\t\t<color>ff000000</color>\n\t</LineStyle>")
		kw.line("\t<PolyStyle>\n\t\t<color>ff000000</color>\n\t</PolyStyle>")
		kw.line(`</Style>`)
	}
	kw.line(`<StyleMap id="failed1">`)
	kw.line("\t<Pair>\n\t\t<key>normal</key>\n\t\t<styleUrl>#failed0</styleUrl>\n\t</Pair>")
	kw.line("\t<Pair>\n\t\t<key>highlight</key>\n\t\t<styleUrl>#failed</styleUrl>\n\t</Pair>")
	kw.line(`</StyleMap>`)
}

func (kw *writer) writeGrid(name string, b orb.Bound) {
	minX, minY := FormatValue(b.Min[0]), FormatValue(b.Min[1])
	maxX, maxY := FormatValue(b.Max[0]), FormatValue(b.Max[1])

	kw.line(`<Placemark>`)
	kw.printf("<name>%s</name>\n", GridPlacemarkName)
	kw.line(`<Style><LineStyle><color>ff000000</color><width>10</width></LineStyle><PolyStyle><color>0000ffff</color><fill>0</fill></PolyStyle></Style>`)
	kw.printf("<ExtendedData><SchemaData schemaUrl=\"#%s\">\n", name)
	kw.line(`<SimpleData name=" Conc(ug/m3)">0</SimpleData>`)
	kw.line(`</SchemaData></ExtendedData>`)
	kw.printf("<MultiGeometry><Polygon><outerBoundaryIs><LinearRing><coordinates>%s,%s %s,%s %s,%s %s,%s %s,%s </coordinates></LinearRing></outerBoundaryIs></Polygon></MultiGeometry>\n",
		minX, minY, maxX, minY, maxX, maxY, minX, maxY, minX, minY)
	kw.line(`</Placemark>`)
}

func (kw *writer) writeLevel(name, variable string, lvl LevelPlacemark) {
	value := FormatValue(lvl.Value)
	color := escape(lvl.Color)

	kw.line(`<Placemark>`)
	kw.printf("<name>%s</name>\n", escape(lvl.Name(variable)))
	variable = escape(variable)
	kw.printf("<Style><LineStyle><color>%s</color><width>1</width></LineStyle><PolyStyle><color>%s</color><fill>1</fill></PolyStyle></Style>\n", color, color)
	kw.printf("<ExtendedData><SchemaData schemaUrl=\"#%s\">\n", name)
	kw.printf("<SimpleData name=\" Conc(%s)\">%s</SimpleData>\n", variable, value)
	kw.line(`</SchemaData></ExtendedData>`)
	kw.printf("<MultiGeometry>")
	for _, b := range lvl.Boundaries {
		tag := b.Winding.String()
		kw.printf("<Polygon><%sBoundaryIs><LinearRing><coordinates>", tag)
		kw.writeRing(b.Ring)
		kw.printf("</coordinates></LinearRing></%sBoundaryIs></Polygon>", tag)
	}
	kw.line(`</MultiGeometry>`)
	kw.line(`</Placemark>`)
}

// writeRing 输出 "lon,lat " 序列，不含高程。
func (kw *writer) writeRing(r orb.Ring) {
	for _, p := range r {
		kw.printf("%s,%s ", FormatValue(p[0]), FormatValue(p[1]))
	}
}

// writer 记录第一个写入错误，之后的写入全部忽略。
type writer struct {
	w   *bufio.Writer
	err error
}

func (kw *writer) printf(format string, args ...any) {
	if kw.err != nil {
		return
	}
	_, kw.err = fmt.Fprintf(kw.w, format, args...)
}

func (kw *writer) line(s string) {
	if kw.err != nil {
		return
	}
	if _, kw.err = kw.w.WriteString(s); kw.err == nil {
		kw.err = kw.w.WriteByte('\n')
	}
}

func (kw *writer) flush() error {
	if kw.err != nil {
		return kw.err
	}
	return kw.w.Flush()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
