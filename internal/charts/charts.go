// Package charts derives the aggregate counts behind the dashboard's two
// charts. The service ships counts; drawing is the client's concern.
package charts

import "github.com/minhaalawais/fos-hrdd-software/internal/model"

// StatusBuckets is the fixed doughnut bucket order. Bounced1 is merged into
// the Bounced bucket; terminal Unclosed/Completed records are not charted.
var StatusBuckets = []string{
	string(model.StatusUnprocessed),
	string(model.StatusInProcess),
	string(model.StatusSubmitted),
	string(model.StatusBounced),
}

type StatusSlice struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// StatusDistribution computes the doughnut slices in fixed bucket order.
func StatusDistribution(complaints []model.Complaint) []StatusSlice {
	counts := make(map[string]int, len(StatusBuckets))
	for _, c := range complaints {
		if bucket, ok := statusBucket(c.Status); ok {
			counts[bucket]++
		}
	}

	slices := make([]StatusSlice, 0, len(StatusBuckets))
	for _, bucket := range StatusBuckets {
		slices = append(slices, StatusSlice{Status: bucket, Count: counts[bucket]})
	}
	return slices
}

type Series struct {
	Status string `json:"status"`
	Counts []int  `json:"counts"`
}

// CategoryChart is the bar chart: a count per fixed category, split into one
// series per status bucket, or a single series when a status filter is active.
type CategoryChart struct {
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

// CategoryBreakdown computes the bar chart. statusFilter is the active status
// filter value ("" for none); complaints outside the fixed category set are
// not counted.
func CategoryBreakdown(complaints []model.Complaint, statusFilter string) CategoryChart {
	chart := CategoryChart{Categories: model.Categories}

	if statusFilter == "" {
		for _, bucket := range StatusBuckets {
			chart.Series = append(chart.Series, categorySeries(complaints, bucket))
		}
		return chart
	}

	if bucket, ok := statusBucket(model.ComplaintStatus(statusFilter)); ok {
		chart.Series = append(chart.Series, categorySeries(complaints, bucket))
	}
	return chart
}

func categorySeries(complaints []model.Complaint, bucket string) Series {
	index := make(map[string]int, len(model.Categories))
	for i, category := range model.Categories {
		index[category] = i
	}

	counts := make([]int, len(model.Categories))
	for _, c := range complaints {
		i, known := index[c.Categories]
		if !known {
			continue
		}
		if b, ok := statusBucket(c.Status); ok && b == bucket {
			counts[i]++
		}
	}
	return Series{Status: bucket, Counts: counts}
}

func statusBucket(status model.ComplaintStatus) (string, bool) {
	switch status {
	case model.StatusUnprocessed, model.StatusInProcess, model.StatusSubmitted, model.StatusBounced:
		return string(status), true
	case model.StatusBounced1:
		return string(model.StatusBounced), true
	default:
		return "", false
	}
}
