package entity

import "time"

// LeadStats is the admin dashboard view. Read-only, built straight from
// aggregate queries.
type LeadStats struct {
	TotalTelecallers int          `json:"total_telecallers"`
	TotalCalls       int          `json:"total_calls"`
	TotalCustomers   int          `json:"total_customers"`
	RecentCalls      []RecentCall `json:"recent_calls"`
	CallTrends       []CallTrend  `json:"call_trends"`
}

type RecentCall struct {
	LeadID         string     `json:"lead_id"`
	LeadName       string     `json:"lead_name"`
	TelecallerName string     `json:"telecaller_name"`
	CallDate       *time.Time `json:"call_date"`
}

type CallTrend struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
