package dto

import (
	"cohost/internal/domains/analytics/model"
)

type SummaryResponse struct {
	Days int `json:"days"`
	model.Summary
}

func (s *SummaryResponse) FromSummary(days int, summary model.Summary) {
	s.Days = days
	s.Summary = summary
}

type DailyResponse struct {
	Days    int                 `json:"days"`
	Buckets []model.DailyBucket `json:"buckets"`
}

func (d *DailyResponse) FromBuckets(days int, buckets []model.DailyBucket) {
	d.Days = days
	d.Buckets = buckets
}

type RoomsResponse struct {
	Days  int                `json:"days"`
	Rooms []model.RoomBucket `json:"rooms"`
}

func (r *RoomsResponse) FromBuckets(days int, buckets []model.RoomBucket) {
	r.Days = days
	r.Rooms = buckets
}

type InsightsResponse struct {
	Days      int    `json:"days"`
	Generated bool   `json:"generated"`
	Insights  string `json:"insights"`
}
