package shopping

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// 數量解析失敗時的預設值：單一壞資料不可中斷整批彙總
const fallbackAmount = 1.0

// 資料品質問題類型
const (
	IssueMalformedAmount = "malformed_amount"
	IssueEmptyName       = "empty_name"
	IssueMissingRecipe   = "missing_recipe"
	IssuePricingFailed   = "pricing_failed"
	IssueEntryPanic      = "entry_panic"
)

// Issue 彙總過程中遇到的可恢復資料品質問題
// 只記錄、不外拋，供觀測與測試使用
type Issue struct {
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// ParseAmount 將寬鬆型別的數量值轉為數字
// 已是數字則原樣回傳；字串會嘗試以十進位解析；
// 解析失敗（非數字文字、null、格式錯誤）回傳 1.0，永不失敗
func ParseAmount(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return fallbackAmount, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fallbackAmount, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fallbackAmount, false
		}
		return f, true
	default:
		return fallbackAmount, false
	}
}

// amountIssue 建立數量解析失敗的問題記錄
func amountIssue(name string, raw interface{}) Issue {
	return Issue{
		Kind:   IssueMalformedAmount,
		Name:   name,
		Detail: fmt.Sprintf("unparseable amount %v, fallback to %.1f", raw, fallbackAmount),
	}
}
