package shopping

import (
	"fmt"
	"strings"
)

// FormatForSMS 將分組後的購物清單轉為簡訊純文字
// 每個分類一段，段落間以空行分隔，最後附上總價：
//
//	<Category>:
//	- <Name>: <amount 1 位小數> <unit> (<currency> <price 2 位小數>)
//
//	Total: <currency> <total 2 位小數>
func FormatForSMS(groups []CategoryGroup, totalPrice float64, currencyPrefix string) string {
	var sb strings.Builder

	for _, group := range groups {
		sb.WriteString(group.Category)
		sb.WriteString(":\n")
		for _, item := range group.Items {
			sb.WriteString(fmt.Sprintf("- %s: %.1f %s (%s %.2f)\n",
				item.Name, item.Amount, item.Unit, currencyPrefix, item.Price))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Total: %s %.2f", currencyPrefix, totalPrice))

	return sb.String()
}
