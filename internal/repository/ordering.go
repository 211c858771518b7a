package repository

import (
	"fmt"
	"strings"

	"github.com/Tedbot2000/todo-genie/internal/entity"
)

// priorityRankExpr - entity.TaskPriority.Rank на SQL:
// CASE priority WHEN 'Low' THEN 3 ... ELSE 4 END
var priorityRankExpr = buildPriorityRankExpr()

func buildPriorityRankExpr() string {
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, p := range entity.Priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	// любое значение вне перечисления
	fmt.Fprintf(&b, " ELSE %d END", entity.TaskPriority("").Rank())
	return b.String()
}

// orderByClause возвращает ORDER BY для списка задач.
// При сортировке по сроку вторичный ключ - строка приоритета, а не ранг.
func orderByClause(sortBy entity.SortBy) string {
	switch sortBy {
	case entity.SortByDueDate:
		return "due_date ASC NULLS LAST, priority ASC, id ASC"
	default:
		return priorityRankExpr + " ASC, due_date ASC NULLS LAST, id ASC"
	}
}
