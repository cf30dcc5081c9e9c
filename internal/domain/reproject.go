/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
)

// 支持的投影族
const (
	FamilyUTM     = "utm"
	FamilyLongLat = "longlat"
)

// UTM 坐标以公里输入，变换前乘以该系数
const kmToMeter = 1000.0

// 已知椭球名称（小写 -> proj4 规范名）
var ellipsoids = map[string]string{
	"wgs84":   "WGS84",
	"grs80":   "GRS80",
	"wgs66":   "WGS66",
	"wgs60":   "WGS60",
	"intl":    "intl",
	"clrk66":  "clrk66",
	"clrk80":  "clrk80",
	"bessel":  "bessel",
	"airy":    "airy",
	"krass":   "krass",
	"grs67":   "GRS67",
	"aust_sa": "aust_SA",
	"helmert": "helmert",
	"sphere":  "sphere",
}

// Projection 描述源坐标系：投影族、带号（可含纬度带字母）与椭球。
type Projection struct {
	Family string
	Zone   string
	Datum  string
}

func (p Projection) key() string {
	return strings.ToLower(strings.TrimSpace(p.Family)) + "|" +
		strings.ToUpper(strings.TrimSpace(p.Zone)) + "|" +
		strings.ToLower(strings.TrimSpace(p.Datum))
}

func (p Projection) fail(err error) error {
	return &ProjectionError{Family: p.Family, Zone: p.Zone, Datum: p.Datum, Err: err}
}

// normalizedFamily 返回规范化的投影族；以 "+proj=" 开头的完整定义原样返回。
func (p Projection) normalizedFamily() string {
	f := strings.TrimSpace(p.Family)
	if strings.HasPrefix(f, "+") {
		return f
	}
	switch strings.ToLower(f) {
	case "utm":
		return FamilyUTM
	case "longlat", "latlong", "lonlat", "geographic", "wgs84", "epsg:4326":
		return FamilyLongLat
	}
	return strings.ToLower(f)
}

// Proj4 构造源坐标系的 proj4 定义。
func (p Projection) Proj4() (string, error) {
	ellps, ok := ellipsoids[strings.ToLower(strings.TrimSpace(p.Datum))]
	if !ok {
		return "", p.fail(fmt.Errorf("未知椭球 %q", p.Datum))
	}
	switch family := p.normalizedFamily(); family {
	case FamilyUTM:
		zone, south, err := ParseZone(p.Zone)
		if err != nil {
			return "", p.fail(err)
		}
		def := fmt.Sprintf("+proj=utm +zone=%d +ellps=%s +units=m +no_defs", zone, ellps)
		if south {
			def += " +south"
		}
		return def, nil
	case FamilyLongLat:
		return fmt.Sprintf("+proj=longlat +ellps=%s +no_defs", ellps), nil
	default:
		if strings.HasPrefix(family, "+proj=") {
			return family, nil
		}
		return "", p.fail(fmt.Errorf("不支持的投影族 %q", p.Family))
	}
}

// ParseZone 解析 UTM 带号，如 "32"、"32T"、"32 T"。
// 纬度带字母 C..M 表示南半球，N..X 表示北半球，缺省为北半球。
func ParseZone(zone string) (number int, south bool, err error) {
	z := strings.ToUpper(strings.Join(strings.Fields(zone), ""))
	if z == "" {
		return 0, false, errors.New("带号为空")
	}
	end := strings.IndexFunc(z, func(r rune) bool { return !unicode.IsDigit(r) })
	digits, band := z, ""
	if end >= 0 {
		digits, band = z[:end], z[end:]
	}
	number, err = strconv.Atoi(digits)
	if err != nil || number < 1 || number > 60 {
		return 0, false, fmt.Errorf("带号 %q 超出 1..60", zone)
	}
	switch {
	case band == "":
	case len(band) == 1 && band[0] >= 'C' && band[0] <= 'X' && band[0] != 'I' && band[0] != 'O':
		south = band[0] < 'N'
	default:
		return 0, false, fmt.Errorf("纬度带 %q 无效", band)
	}
	return number, south, nil
}

// transformPair 是同一坐标系的正反向变换。
type transformPair struct {
	toGeo   proj.Transformer
	fromGeo proj.Transformer
}

func identity(x, y float64) (float64, float64, error) { return x, y, nil }

// TransformCache 按 (投影族, 带号, 椭球) 缓存已构建的变换，构建后只读，可并发使用。
type TransformCache struct {
	mu    sync.Mutex
	pairs map[string]*transformPair
}

// NewTransformCache 创建空缓存。
func NewTransformCache() *TransformCache {
	return &TransformCache{pairs: make(map[string]*transformPair)}
}

// Len 返回已缓存的变换数量。
func (c *TransformCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pairs)
}

func (c *TransformCache) get(p Projection) (*transformPair, error) {
	key := p.key()
	c.mu.Lock()
	defer c.mu.Unlock()
	if pair, ok := c.pairs[key]; ok {
		return pair, nil
	}
	def, err := p.Proj4()
	if err != nil {
		return nil, err
	}
	src, err := proj.Parse(def)
	if err != nil {
		return nil, p.fail(err)
	}
	ellps := ellipsoids[strings.ToLower(strings.TrimSpace(p.Datum))]
	dst, err := proj.Parse("+proj=longlat +ellps=" + ellps + " +no_defs")
	if err != nil {
		return nil, p.fail(err)
	}
	toGeo, err := src.NewTransform(dst)
	if err != nil {
		return nil, p.fail(err)
	}
	fromGeo, err := dst.NewTransform(src)
	if err != nil {
		return nil, p.fail(err)
	}
	// 源与目标相同时 NewTransform 返回 nil，此时坐标原样通过
	if toGeo == nil {
		toGeo = identity
	}
	if fromGeo == nil {
		fromGeo = identity
	}
	pair := &transformPair{toGeo: toGeo, fromGeo: fromGeo}
	c.pairs[key] = pair
	return pair, nil
}

// Reprojector 把源坐标（UTM 公里或其他投影的原生单位）转换为经纬度（度）。
type Reprojector struct {
	projection Projection
	scale      float64
	pair       *transformPair
}

// NewReprojector 从缓存获取（或构建）变换。cache 为 nil 时使用一次性缓存。
func NewReprojector(cache *TransformCache, p Projection) (*Reprojector, error) {
	if cache == nil {
		cache = NewTransformCache()
	}
	pair, err := cache.get(p)
	if err != nil {
		return nil, err
	}
	scale := 1.0
	if p.normalizedFamily() == FamilyUTM {
		scale = kmToMeter
	}
	return &Reprojector{projection: p, scale: scale, pair: pair}, nil
}

// Projection 返回源坐标系描述。
func (r *Reprojector) Projection() Projection { return r.projection }

// Transform 转换单个点，返回 (经度, 纬度)。
func (r *Reprojector) Transform(x, y float64) (lon, lat float64, err error) {
	lon, lat, err = r.pair.toGeo(x*r.scale, y*r.scale)
	if err != nil {
		return 0, 0, r.projection.fail(err)
	}
	return lon, lat, nil
}

// Inverse 把经纬度转换回源坐标（UTM 时为公里）。
func (r *Reprojector) Inverse(lon, lat float64) (x, y float64, err error) {
	x, y, err = r.pair.fromGeo(lon, lat)
	if err != nil {
		return 0, 0, r.projection.fail(err)
	}
	return x / r.scale, y / r.scale, nil
}

// TransformSlices 批量转换，结果与逐点 Transform 完全一致。
func (r *Reprojector) TransformSlices(xs, ys []float64) (lons, lats []float64, err error) {
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("坐标数组长度不一致: %d != %d", len(xs), len(ys))
	}
	lons = make([]float64, len(xs))
	lats = make([]float64, len(ys))
	toGeo, scale := r.pair.toGeo, r.scale
	for i := range xs {
		if lons[i], lats[i], err = toGeo(xs[i]*scale, ys[i]*scale); err != nil {
			return nil, nil, r.projection.fail(fmt.Errorf("第 %d 个点: %w", i+1, err))
		}
	}
	return lons, lats, nil
}

// TransformRing 转换一个环的全部顶点，返回新环。
func (r *Reprojector) TransformRing(ring Ring) (Ring, error) {
	out := make(Ring, len(ring))
	for i, pt := range ring {
		lon, lat, err := r.Transform(pt[0], pt[1])
		if err != nil {
			return nil, err
		}
		out[i] = orb.Point{lon, lat}
	}
	return out, nil
}

// Bound 转换一组点并返回其经纬度外包矩形。
func (r *Reprojector) Bound(xs, ys []float64) (orb.Bound, error) {
	lons, lats, err := r.TransformSlices(xs, ys)
	if err != nil {
		return orb.Bound{}, err
	}
	if len(lons) == 0 {
		return orb.Bound{}, errors.New("没有可计算范围的点")
	}
	b := orb.Point{lons[0], lats[0]}.Bound()
	for i := 1; i < len(lons); i++ {
		b = b.Extend(orb.Point{lons[i], lats[i]})
	}
	return b, nil
}

// TransformLevels 转换所有层的环，返回结构与输入一一对应的新层。
func (r *Reprojector) TransformLevels(levels []Level) ([]Level, error) {
	out := make([]Level, len(levels))
	for i, lvl := range levels {
		rings := make([]Ring, len(lvl.Rings))
		for j, ring := range lvl.Rings {
			geo, err := r.TransformRing(ring)
			if err != nil {
				return nil, fmt.Errorf("第 %d 层第 %d 个环转换失败: %w", i+1, j+1, err)
			}
			rings[j] = geo
		}
		out[i] = Level{Value: lvl.Value, Rings: rings}
	}
	return out, nil
}
