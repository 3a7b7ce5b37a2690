package model

import (
	"strconv"
	"strings"
)

// Float 宽容数值转换
// dump 中的数值叶子可能缺失（nil）、是字符串、甚至是布尔值；
// 任何无法解析的值一律按 0.0 处理，而不是报错。
func Float(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int 宽容整数转换（截断小数部分）
func Int(v any) int {
	return int(Float(v))
}

// Bool 宽容布尔转换
// 布尔值直接返回；数值按非零为真；字符串接受 true/1（不区分大小写）。
func Bool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		return s == "true" || s == "1"
	default:
		return Float(v) != 0
	}
}

// Text 宽容字符串转换，用于 id / seed 这类展示字段
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return "NA"
	case string:
		if x == "" {
			return "NA"
		}
		return x
	case float64:
		// JSON 整数也会解码成 float64，尽量按整数展示
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return "NA"
	}
}
