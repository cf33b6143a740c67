package models

// EventStats holds the engagement counters tracked for one event.
type EventStats struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Category            Category `json:"category"` // snapshot taken at first view
	Views               int      `json:"views"`
	Shares              int      `json:"shares"`
	QRScans             int      `json:"qrScans"`
	EstimatedAttendance int      `json:"estimatedAttendance"`
	PopularityScore     int      `json:"popularityScore"`
}

// CategoryStat is the share of the event collection in one category.
type CategoryStat struct {
	Category   Category `json:"category"`
	Count      int      `json:"count"`
	Percentage int      `json:"percentage"`
}

// DailyActivity is the view/share volume for one calendar day.
type DailyActivity struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Views  int    `json:"views"`
	Shares int    `json:"shares"`
}

// AnalyticsData is the aggregate report rendered by the analytics dashboard.
type AnalyticsData struct {
	TotalEvents              int             `json:"totalEvents"`
	TotalViews               int             `json:"totalViews"`
	TotalShares              int             `json:"totalShares"`
	TotalEstimatedAttendance int             `json:"totalEstimatedAttendance"`
	PopularEvents            []EventStats    `json:"popularEvents"`
	CategoryStats            []CategoryStat  `json:"categoryStats"`
	RecentActivity           []DailyActivity `json:"recentActivity"`
}
