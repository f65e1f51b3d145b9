package grocery

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key 食材去重鍵：小寫並去除前後空白，不處理單複數
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DisplayName 顯示名稱：保留首次出現的大小寫，首字母大寫
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// NormalizeCategory 分類轉小寫，空值歸為 other
func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "other"
	}
	return category
}

// sanitizeAmount NaN、無限大與負數一律視為 0
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseAmount 解析自由文字數量："2"、"2.5"、"1/2"、"1 1/2"，無法解析時回傳 0
func ParseAmount(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return 0
	}

	total := 0.0
	for i, f := range fields {
		v, ok := parseNumber(f)
		if !ok {
			return 0
		}
		// 帶分數只允許第二段是分數
		if i == 1 && !strings.Contains(f, "/") {
			return 0
		}
		total += v
	}
	return sanitizeAmount(total)
}

func parseNumber(s string) (float64, bool) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// roundCents 四捨五入到小數第二位
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatAmount 數量轉字串，去除多餘的 0
func formatAmount(v float64) string {
	return strconv.FormatFloat(roundCents(v), 'f', -1, 64)
}
