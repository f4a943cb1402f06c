package shopping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmountNumeric(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want float64
	}{
		{"float64", 2.5, 2.5},
		{"float32", float32(1.5), 1.5},
		{"int", 3, 3.0},
		{"int64", int64(7), 7.0},
		{"zero", 0.0, 0.0},
		{"negative", -2.0, -2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmountJSONNumber(t *testing.T) {
	// JSON 解碼統一使用 UseNumber，數量欄位會以 json.Number 型別進來
	got, ok := ParseAmount(json.Number("2"))
	assert.True(t, ok)
	assert.Equal(t, 2.0, got)

	got, ok = ParseAmount(json.Number("0.75"))
	assert.True(t, ok)
	assert.Equal(t, 0.75, got)
}

func TestParseAmountString(t *testing.T) {
	got, ok := ParseAmount("2")
	assert.True(t, ok)
	assert.Equal(t, 2.0, got)

	got, ok = ParseAmount(" 1.5 ")
	assert.True(t, ok)
	assert.Equal(t, 1.5, got)
}

func TestParseAmountFallback(t *testing.T) {
	// 解析失敗一律退回 1.0，永不失敗
	tests := []struct {
		name string
		raw  interface{}
	}{
		{"nil", nil},
		{"non numeric text", "a pinch"},
		{"empty string", ""},
		{"bool", true},
		{"map", map[string]interface{}{"value": 2}},
		{"malformed number", json.Number("not-a-number")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			assert.False(t, ok)
			assert.Equal(t, fallbackAmount, got)
		})
	}
}

func TestAmountIssueDetail(t *testing.T) {
	issue := amountIssue("Salt", "a pinch")
	assert.Equal(t, IssueMalformedAmount, issue.Kind)
	assert.Equal(t, "Salt", issue.Name)
	assert.Contains(t, issue.Detail, "a pinch")
}
