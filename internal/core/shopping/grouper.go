package shopping

import (
	"sort"
	"strings"

	"mealmate-api/internal/pkg/common"
)

// CategoryGroup 單一分類與其項目
type CategoryGroup struct {
	Category string                `json:"category"`
	Items    []common.ShoppingItem `json:"items"`
}

// RowKind 顯示列類型
type RowKind string

// 顯示列類型：分類標題列與項目列
const (
	RowKindHeader RowKind = "header"
	RowKindItem   RowKind = "item"
)

// Row 扁平化的顯示列（標題列或項目列擇一）
type Row struct {
	Kind     RowKind              `json:"kind"`
	Category string               `json:"category,omitempty"`
	Item     *common.ShoppingItem `json:"item,omitempty"`
}

// Group 依分類分組並排序
// 分類依標準標籤遞增排序（區分大小寫），同分類內項目依品名
// 遞增排序（不分大小寫）；同一輸入的輸出完全可重現，
// 以確保畫面與簡訊匯出內容穩定
func Group(items []common.ShoppingItem) []CategoryGroup {
	byCategory := make(map[string][]common.ShoppingItem)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	groups := make([]CategoryGroup, 0, len(categories))
	for _, category := range categories {
		grouped := byCategory[category]
		sort.SliceStable(grouped, func(i, j int) bool {
			ni, nj := strings.ToLower(grouped[i].Name), strings.ToLower(grouped[j].Name)
			if ni != nj {
				return ni < nj
			}
			return grouped[i].Name < grouped[j].Name
		})
		groups = append(groups, CategoryGroup{
			Category: category,
			Items:    grouped,
		})
	}

	return groups
}

// Rows 將分組結果攤平為標題列加項目列的顯示序列
func Rows(groups []CategoryGroup) []Row {
	var rows []Row
	for _, group := range groups {
		rows = append(rows, Row{Kind: RowKindHeader, Category: group.Category})
		for i := range group.Items {
			rows = append(rows, Row{Kind: RowKindItem, Item: &group.Items[i]})
		}
	}
	return rows
}
