package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// 早期版本不校验提交内容，旧文档里同一字段可能是任意 JSON 类型。
// 下面的函数把能解释的值转换过来，其余视为缺失。

// lenientString 字符串原样返回，数字与布尔取其字面文本
func lenientString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	case 't', 'f':
		return string(raw), true
	case 'n', '{', '[':
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String(), true
		}
	}
	return "", false
}

// lenientFloat 数字或数字字符串
func lenientFloat(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func lenientInt(raw json.RawMessage) (int, bool) {
	f, ok := lenientFloat(raw)
	return int(f), ok
}

// lenientInts 数组里无法识别的元素被跳过
func lenientInts(raw json.RawMessage) ([]int, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	res := make([]int, 0, len(items))
	for _, item := range items {
		if n, ok := lenientInt(item); ok {
			res = append(res, n)
		}
	}
	return res, true
}

// lenientTime RFC 3339 字符串，或毫秒时间戳
func lenientTime(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return time.Time{}, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, false
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		return ts.UTC(), err == nil
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}
