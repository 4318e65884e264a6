package models

type CompetitorModel struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Website            string   `json:"website"`
	Industry           string   `json:"industry,omitempty"`
	CheckIntervalHours int      `json:"checkIntervalHours"`
	MonitoringEnabled  bool     `json:"monitoringEnabled"`
	Keywords           []string `json:"keywords,omitempty"`
}
