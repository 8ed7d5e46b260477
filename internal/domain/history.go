package domain

import "time"

// HistoryEntry records one generated password.
type HistoryEntry struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	Password    Password  `json:"password" yaml:"password"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
}
