package domain

// DateLayout is the display format tasks are stored with ("June 01, 2025").
const DateLayout = "January 02, 2006"

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Postgres, Redis.
type Task struct {
	ID       int64
	AuthorID int64
	Title    string
	Date     string // creation date, DateLayout
	TaskDate string // scheduled date, DateLayout
}

// Draft is an unpersisted task held in the visitor's session until it is
// flushed into storage under a user id.
type Draft struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	TaskDate string `json:"task_date"`
}
