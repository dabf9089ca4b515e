package models

type User struct {
	ID      int64   `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Balance float64 `json:"balance" yaml:"balance"`
}
