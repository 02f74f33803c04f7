package models

// TestNotificationRequest triggers a synthetic alert through the real
// parse and dispatch path. At least one of Title/HTMLContent is required.
type TestNotificationRequest struct {
	Source      string `json:"source" default:"binance" validate:"oneof=binance bybit"`
	Title       string `json:"title" validate:"required_without=HTMLContent"`
	HTMLContent string `json:"html_content" validate:"required_without=Title"`
	URL         string `json:"url" validate:"omitempty,url"`
}

// RecentAlertsRequest queries the alert archive.
type RecentAlertsRequest struct {
	Hours int `query:"hours" default:"24" validate:"min=1,max=720"`
	Limit int `query:"limit" default:"50" validate:"min=1,max=500"`
}
