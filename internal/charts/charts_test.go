package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhaalawais/fos-hrdd-software/internal/model"
)

func chartComplaints() []model.Complaint {
	return []model.Complaint{
		{Status: model.StatusUnprocessed, Categories: "Harassment"},
		{Status: model.StatusInProcess, Categories: "Harassment"},
		{Status: model.StatusInProcess, Categories: "Working Hours"},
		{Status: model.StatusSubmitted, Categories: "Working Hours"},
		{Status: model.StatusBounced, Categories: "Harassment"},
		{Status: model.StatusBounced1, Categories: "Working Hours"},
		{Status: model.StatusCompleted, Categories: "Harassment"},
		{Status: model.StatusUnclosed, Categories: "Discipline"},
	}
}

func TestStatusDistributionFixedOrder(t *testing.T) {
	slices := StatusDistribution(chartComplaints())

	require.Len(t, slices, 4)
	assert.Equal(t, "Unprocessed", slices[0].Status)
	assert.Equal(t, "In Process", slices[1].Status)
	assert.Equal(t, "Submitted", slices[2].Status)
	assert.Equal(t, "Bounced", slices[3].Status)
}

// Bounced1 lands in the Bounced slice; terminal complaints are not charted.
func TestStatusDistributionCounts(t *testing.T) {
	slices := StatusDistribution(chartComplaints())

	assert.Equal(t, 1, slices[0].Count)
	assert.Equal(t, 2, slices[1].Count)
	assert.Equal(t, 1, slices[2].Count)
	assert.Equal(t, 2, slices[3].Count)

	total := 0
	for _, s := range slices {
		total += s.Count
	}
	assert.Equal(t, 6, total, "Completed and Unclosed must not be charted")
}

func TestStatusDistributionEmptyKeepsBuckets(t *testing.T) {
	slices := StatusDistribution(nil)

	require.Len(t, slices, 4)
	for _, s := range slices {
		assert.Equal(t, 0, s.Count)
	}
}

func TestCategoryBreakdownStackedSeries(t *testing.T) {
	chart := CategoryBreakdown(chartComplaints(), "")

	assert.Equal(t, model.Categories, chart.Categories)
	require.Len(t, chart.Series, 4)

	harassment := indexOf(t, chart.Categories, "Harassment")
	workingHours := indexOf(t, chart.Categories, "Working Hours")

	bySeries := make(map[string]Series, len(chart.Series))
	for _, s := range chart.Series {
		bySeries[s.Status] = s
	}

	assert.Equal(t, 1, bySeries["Unprocessed"].Counts[harassment])
	assert.Equal(t, 1, bySeries["In Process"].Counts[harassment])
	assert.Equal(t, 1, bySeries["In Process"].Counts[workingHours])
	assert.Equal(t, 1, bySeries["Submitted"].Counts[workingHours])
	assert.Equal(t, 1, bySeries["Bounced"].Counts[harassment])
	assert.Equal(t, 1, bySeries["Bounced"].Counts[workingHours], "Bounced1 counts in the Bounced series")
}

func TestCategoryBreakdownSingleSeriesUnderStatusFilter(t *testing.T) {
	chart := CategoryBreakdown(chartComplaints(), "Bounced")

	require.Len(t, chart.Series, 1)
	assert.Equal(t, "Bounced", chart.Series[0].Status)

	harassment := indexOf(t, chart.Categories, "Harassment")
	workingHours := indexOf(t, chart.Categories, "Working Hours")
	assert.Equal(t, 1, chart.Series[0].Counts[harassment])
	assert.Equal(t, 1, chart.Series[0].Counts[workingHours])
}

func TestCategoryBreakdownIgnoresUnknownCategories(t *testing.T) {
	complaints := []model.Complaint{
		{Status: model.StatusInProcess, Categories: "No Such Category"},
		{Status: model.StatusInProcess, Categories: "Harassment"},
	}

	chart := CategoryBreakdown(complaints, "In Process")

	require.Len(t, chart.Series, 1)
	total := 0
	for _, n := range chart.Series[0].Counts {
		total += n
	}
	assert.Equal(t, 1, total)
}

func indexOf(t *testing.T, categories []string, name string) int {
	t.Helper()
	for i, c := range categories {
		if c == name {
			return i
		}
	}
	t.Fatalf("category %q not in chart", name)
	return -1
}
