package models

import "time"

// Category classifies a habit for filtering and summaries.
type Category string

const (
	CategorySports  Category = "sports"
	CategoryFinance Category = "finance"
	CategoryStudy   Category = "study"
	CategoryWork    Category = "work"
	CategoryHealth  Category = "health"
	CategoryCustom  Category = "custom"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategorySports,
		CategoryFinance,
		CategoryStudy,
		CategoryWork,
		CategoryHealth,
		CategoryCustom,
	}
}

// IsValid reports whether the category is one of the known values.
func (c Category) IsValid() bool {
	switch c {
	case CategorySports, CategoryFinance, CategoryStudy, CategoryWork, CategoryHealth, CategoryCustom:
		return true
	default:
		return false
	}
}

// Todo is a single checklist item belonging to a habit. Archived todos are
// kept in storage but excluded from progress and streak computation.
type Todo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Note     string `json:"note,omitempty"`
	Archived bool   `json:"archived,omitempty"`
}

// Habit is a tracked activity composed of a checklist of todos.
type Habit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Todos     []Todo    `json:"todos"`
	CreatedAt time.Time `json:"created_at"`
}

// ActiveTodos returns the non-archived todos in checklist order.
func (h Habit) ActiveTodos() []Todo {
	todos := make([]Todo, 0, len(h.Todos))
	for _, todo := range h.Todos {
		if !todo.Archived {
			todos = append(todos, todo)
		}
	}
	return todos
}
