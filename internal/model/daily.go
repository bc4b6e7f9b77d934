package model

// Task is one item of the daily protocol checklist.
type Task struct {
	Task        string `yaml:"task" json:"task"`
	Description string `yaml:"description" json:"description"`
	Completed   bool   `yaml:"completed" json:"completed"`
}

// CategoryScore is a 0-100 score for one life area.
type CategoryScore struct {
	Subject string `yaml:"subject" json:"subject"`
	Score   int    `yaml:"score" json:"score"`
}

// PresenceCategory groups canned research results under one heading.
type PresenceCategory struct {
	ID    string   `yaml:"id" json:"id"`
	Title string   `yaml:"title" json:"title"`
	Items []string `yaml:"items" json:"items"`
}
