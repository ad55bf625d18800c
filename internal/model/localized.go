package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LocalizedText 语言代码 -> 文本
//
// 反序列化时不是 JSON 对象的值视为缺失（nil），对象里类型不符的条目会被跳过，
// 这样存量数据里的脏题目只会降级显示，而不会让整份题库读不出来。
type LocalizedText map[string]string

// LocalizedOptions 语言代码 -> 有序选项
type LocalizedOptions map[string][]string

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	raw, ok := decodeObject(data)
	if !ok {
		*t = nil
		return nil
	}
	res := make(LocalizedText, len(raw))
	for lang, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			res[lang] = s
		}
	}
	*t = res
	return nil
}

func (o *LocalizedOptions) UnmarshalJSON(data []byte) error {
	raw, ok := decodeObject(data)
	if !ok {
		*o = nil
		return nil
	}
	res := make(LocalizedOptions, len(raw))
	for lang, v := range raw {
		var opts []string
		if err := json.Unmarshal(v, &opts); err == nil {
			res[lang] = opts
		}
	}
	*o = res
	return nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	return raw, true
}

func (LocalizedText) GormDataType() string {
	return "json"
}

func (LocalizedOptions) GormDataType() string {
	return "json"
}

func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]string(t))
	return string(b), err
}

func (o LocalizedOptions) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string][]string(o))
	return string(b), err
}

func (t *LocalizedText) Scan(value any) error {
	data, err := scanBytes(value)
	if err != nil {
		return err
	}
	if data == nil {
		*t = nil
		return nil
	}
	return t.UnmarshalJSON(data)
}

func (o *LocalizedOptions) Scan(value any) error {
	data, err := scanBytes(value)
	if err != nil {
		return err
	}
	if data == nil {
		*o = nil
		return nil
	}
	return o.UnmarshalJSON(data)
}

func scanBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", value)
	}
}
