package progress

import (
	"math/rand"
	"testing"

	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResources() []models.Resource {
	return []models.Resource{
		{Name: "Cement bags", Type: models.ResourceMaterial, Quantity: 500, CostPerUnit: 2500, Milestone: "WEEK 1", Status: models.ResourcePlanned},
		{Name: "Tilers (gang)", Type: models.ResourceLabour, Quantity: 8, CostPerUnit: 25000, Milestone: "WEEK 2", Status: models.ResourceOnSite},
		{Name: "Roofing sheets", Type: models.ResourceMaterial, Quantity: 120, CostPerUnit: 45000, Milestone: "WEEK 1", Status: models.ResourceUsed},
		{Name: "Scaffold", Type: models.ResourceEquipment, Quantity: 2, CostPerUnit: 10000, Milestone: "  ", Status: models.ResourceOrdered},
		{Name: "Lift unit", Type: models.ResourceEquipment, Quantity: 1, CostPerUnit: 4500000, Milestone: "WEEK 10", Status: models.ResourcePlanned},
	}
}

func TestTotalCost_OrderIndependent(t *testing.T) {
	resources := sampleResources()
	want := TotalCost(resources)
	assert.Equal(t, 500*2500+8*25000+120*45000+2*10000+4500000.0, want)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]models.Resource(nil), resources...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, TotalCost(shuffled))
	}
}

func TestCosts(t *testing.T) {
	c := Costs(sampleResources())

	assert.Equal(t, 5, c.Items)
	assert.Equal(t, 8*25000+120*45000.0, c.DeployedCost)
	assert.Equal(t, Ratio(c.DeployedCost, c.TotalCost), c.DeployedPercent)
	require.Len(t, c.ByStatus, 4)
	assert.Equal(t, StatusCost{Status: models.ResourcePlanned, Count: 2, Cost: 500*2500 + 4500000}, c.ByStatus[0])
	assert.Equal(t, StatusCost{Status: models.ResourceOrdered, Count: 1, Cost: 20000}, c.ByStatus[1])
}

func TestCosts_Empty(t *testing.T) {
	c := Costs(nil)

	assert.Equal(t, 0, c.DeployedPercent)
	assert.Len(t, c.ByStatus, 4)
}

func TestByMilestone(t *testing.T) {
	groups := ByMilestone(sampleResources())

	require.Len(t, groups, 4)
	assert.Equal(t, "WEEK 1", groups[0].Milestone)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 1, groups[0].Done)
	assert.Equal(t, 50, groups[0].Percent)
	assert.Equal(t, 500*2500+120*45000.0, groups[0].Cost)
	assert.Equal(t, "WEEK 2", groups[1].Milestone)
	assert.Equal(t, "WEEK 10", groups[2].Milestone)
	assert.Equal(t, models.Unscheduled, groups[3].Milestone)
	assert.Equal(t, "Scaffold", groups[3].Resources[0].Name)
}

func TestByType_FixedOrderSkipsEmpty(t *testing.T) {
	resources := sampleResources()[:3]

	groups := ByType(resources)

	require.Len(t, groups, 2)
	assert.Equal(t, models.ResourceLabour, groups[0].Type)
	assert.Equal(t, 100, groups[0].Percent)
	assert.Equal(t, models.ResourceMaterial, groups[1].Type)
	assert.Equal(t, 50, groups[1].Percent)
}

func TestOrdered(t *testing.T) {
	names := []string{}
	for _, r := range Ordered(sampleResources()) {
		names = append(names, r.Name)
	}

	assert.Equal(t, []string{"Cement bags", "Roofing sheets", "Tilers (gang)", "Lift unit", "Scaffold"}, names)
}
