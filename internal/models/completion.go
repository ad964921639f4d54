package models

// CompletionLog is the sparse per-habit, per-day, per-todo completion record.
// Keys are habit id -> day (YYYY-MM-DD) -> todo id. Absence of an entry means
// "not completed"; an explicit false is equivalent to absence but may be left
// behind by toggling.
type CompletionLog map[string]map[string]map[string]bool

// IsDone reports whether a todo was completed for a habit on a day.
func (l CompletionLog) IsDone(habitID, day, todoID string) bool {
	return l[habitID][day][todoID]
}

// Toggle flips the completion flag for a todo on a day, creating intermediate
// levels as needed. It returns the new value.
func (l CompletionLog) Toggle(habitID, day, todoID string) bool {
	byDay, ok := l[habitID]
	if !ok {
		byDay = make(map[string]map[string]bool)
		l[habitID] = byDay
	}
	byTodo, ok := byDay[day]
	if !ok {
		byTodo = make(map[string]bool)
		byDay[day] = byTodo
	}
	byTodo[todoID] = !byTodo[todoID]
	return byTodo[todoID]
}

// RemoveHabit drops the entire log subtree for a habit.
func (l CompletionLog) RemoveHabit(habitID string) {
	delete(l, habitID)
}

// RemoveTodo erases a todo's entries across all days of a habit.
func (l CompletionLog) RemoveTodo(habitID, todoID string) {
	for day, byTodo := range l[habitID] {
		delete(byTodo, todoID)
		if len(byTodo) == 0 {
			delete(l[habitID], day)
		}
	}
}
