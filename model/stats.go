package model

import "time"

type UserStats struct {
	EntriesStats struct {
		Total     int `json:"total"`
		PastWeek  int `json:"past_week"`
		PastMonth int `json:"past_month"`
	} `json:"entries_stats"`
	SessionStats struct {
		Active int `json:"active"`
	} `json:"session_stats"`
	SystemStats struct {
		CPUUsage    float64 `json:"cpu_usage"`
		MemoryUsage float64 `json:"memory_usage"`
	} `json:"system_stats"`
	GeneratedAt time.Time `json:"generated_at"`
}
