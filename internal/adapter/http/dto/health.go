package dto

type HealthBasic struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type HealthServices struct {
	Store string `json:"store"`
}

type HealthAdvanced struct {
	AppName    string         `json:"appName"`
	AppVersion string         `json:"appVersion"`
	Timestamp  string         `json:"timestamp"`
	Language   string         `json:"language"`
	Status     HealthServices `json:"status"`
}
