package importer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources_MilestoneFallsBackToWeek(t *testing.T) {
	res := Resources(uuid.New(), "name,type,quantity,week\nLift unit,Equipment,1,WEEK 4\n")

	require.Len(t, res.Records, 1)
	assert.Equal(t, "WEEK 4", res.Records[0].Milestone)
}

func TestResources_MilestoneWinsOverWeek(t *testing.T) {
	res := Resources(uuid.New(), "name,milestone,week\nLift unit,WEEK 5,WEEK 4\nScaffold,,\n")

	require.Len(t, res.Records, 2)
	assert.Equal(t, "WEEK 5", res.Records[0].Milestone)
	assert.Equal(t, "", res.Records[1].Milestone)
	assert.Equal(t, models.Unscheduled, res.Records[1].MilestoneKey())
}

func TestResources_Defaults(t *testing.T) {
	res := Resources(uuid.New(), "name,type,quantity,unit,cost_per_unit,status\nSand,Aggregate,lots,tonnes,-40,Delivered\n")

	require.Len(t, res.Records, 1)
	r := res.Records[0]
	assert.Equal(t, models.ResourceMaterial, r.Type)
	assert.Equal(t, models.ResourcePlanned, r.Status)
	assert.Zero(t, r.Quantity)
	assert.Zero(t, r.CostPerUnit)
	assert.Equal(t, "tonnes", r.Unit)
	assert.Nil(t, r.MilestoneDate)
}

func TestResources_MissingName(t *testing.T) {
	res := Resources(uuid.New(), "name,type\nCement,Material\n,Labour\n")

	require.Len(t, res.Records, 1)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Row 3: missing required fields: name", res.Errors[0].Error())
}

func TestResourceTemplate_RoundTrip(t *testing.T) {
	res := Resources(uuid.New(), ResourceTemplate)

	assert.Empty(t, res.Errors)
	require.Len(t, res.Records, 4)

	lift := res.Records[3]
	assert.Equal(t, "Lift unit", lift.Name)
	assert.Equal(t, models.ResourceEquipment, lift.Type)
	assert.Equal(t, 4500000.0, lift.LineCost())
	assert.Equal(t, "Otis Nigeria", lift.Supplier)
	assert.Equal(t, "Full installation", lift.Notes)
	require.NotNil(t, lift.MilestoneDate)
	assert.Equal(t, "2026-03-09", lift.MilestoneDate.Format(dateLayout))

	assert.Equal(t, models.ResourceOrdered, res.Records[2].Status)
	assert.Equal(t, models.ResourceLabour, res.Records[1].Type)
}

func TestParseNonNegativeNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"2500", 2500},
		{" 12.5 ", 12.5},
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e3", 1000},
		{"500 bags", 500},
		{"12.5kg", 12.5},
		{"2,500", 2},
		{".5", 0.5},
		{"1e", 1},
		{"1.2.3", 1.2},
		{"Infinity", 0},
		{"-3 units", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNonNegativeNumber(tt.raw))
		})
	}
}

func TestChunks(t *testing.T) {
	records := make([]int, 45)
	for i := range records {
		records[i] = i
	}

	chunks := Chunks(records, DefaultBatchSize)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 20)
	assert.Len(t, chunks[2], 5)
	assert.Equal(t, 20, chunks[1][0])
	assert.Equal(t, 44, chunks[2][4])
	assert.Nil(t, Chunks([]int{}, 20))
	assert.Len(t, Chunks(records, 0), 3)
}

func TestTemplate(t *testing.T) {
	s, ok := Template("tasks")
	assert.True(t, ok)
	assert.Equal(t, TaskTemplate, s)

	_, ok = Template("risks")
	assert.False(t, ok)
}

func TestResources_LeadingNumbersWithUnits(t *testing.T) {
	res := Resources(uuid.New(), "name,quantity,cost_per_unit\nCement,500 bags,\"2,500\"\nSand,12.5 tonnes,N4000")

	require.Empty(t, res.Errors)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 500.0, res.Records[0].Quantity)
	assert.Equal(t, 2.0, res.Records[0].CostPerUnit)
	assert.Equal(t, 12.5, res.Records[1].Quantity)
	assert.Equal(t, 0.0, res.Records[1].CostPerUnit)
}
