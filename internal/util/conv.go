package util

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ParseID 解析路径中的题目 ID
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ParseCount 解析数量参数：忽略前导空白，取可选符号后的连续数字，
// 后面多余的字符忽略（"5abc" 为 5）。没有数字或结果不为正数时返回默认值。
func ParseCount(s string, def int) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) && s[0] != '-' {
		// 超出范围的正数等同于要全部题目
		return math.MaxInt
	}
	if err != nil || n <= 0 {
		return def
	}
	return n
}
