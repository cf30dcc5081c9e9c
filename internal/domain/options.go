/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Options 是单次转换的全部参数。按值传递，转换过程中不会被修改。
type Options struct {
	Levels   int    // 等值线层数
	Variable string // 变量显示名，写入 Placemark 名称与 SimpleData
	Zone     string // 投影带号，可带纬度带字母，如 "32" 或 "32 T"
	ProjIn   string // 源投影族：utm | longlat | 完整 proj4 字符串
	ProjOut  string // 椭球/基准面，如 WGS84

	Static   bool    // true: 色带上限取 MaxScale；false: 取最高等值线值
	MaxScale float64 // 静态色带上限
	MinScale float64 // 色带下限；低于该值的层不输出

	XCol   string // X 列名（大小写不敏感）
	YCol   string // Y 列名
	ValCol string // 数值列名

	Multiplier float64 // 数值乘数，1 表示不变

	// 图例平移与缩放
	XShift       float64
	YShift       float64
	XScaleFactor float64
	YScaleFactor float64
}

// DefaultOptions 返回默认参数。
func DefaultOptions() Options {
	return Options{
		Levels:       400,
		Variable:     "Odor",
		Zone:         "32",
		ProjIn:       "utm",
		ProjOut:      "WGS84",
		Static:       false,
		MaxScale:     130,
		MinScale:     0,
		XCol:         "x_km",
		YCol:         "y_km",
		ValCol:       "value",
		Multiplier:   1,
		XShift:       0,
		YShift:       0,
		XScaleFactor: 1,
		YScaleFactor: 1,
	}
}

// Projection 返回源投影描述。
func (o Options) Projection() Projection {
	return Projection{Family: o.ProjIn, Zone: o.Zone, Datum: o.ProjOut}
}

// Validate 校验参数组合。
func (o Options) Validate() error {
	var errs []error
	if o.Levels < 2 {
		errs = append(errs, fmt.Errorf("levels 至少为 2，当前为 %d", o.Levels))
	}
	if strings.TrimSpace(o.XCol) == "" || strings.TrimSpace(o.YCol) == "" || strings.TrimSpace(o.ValCol) == "" {
		errs = append(errs, errors.New("列名不能为空"))
	}
	if o.Multiplier == 0 {
		errs = append(errs, errors.New("数值乘数不能为 0"))
	}
	if o.XScaleFactor <= 0 || o.YScaleFactor <= 0 {
		errs = append(errs, errors.New("图例缩放系数必须大于 0"))
	}
	if o.Static && o.MaxScale <= o.MinScale {
		errs = append(errs, fmt.Errorf("静态色带上限 %g 必须大于下限 %g", o.MaxScale, o.MinScale))
	}
	if strings.TrimSpace(o.ProjIn) == "" {
		errs = append(errs, errors.New("源投影不能为空"))
	}
	return errors.Join(errs...)
}
