package importer

// TaskTemplate is the downloadable example for task imports.
const TaskTemplate = `title,week,section,status,priority,is_critical,notes,start_date,end_date
Plaster lift shaft,WEEK 1,Roofing & Rooftop,Not Started,Critical,true,,2026-02-17,2026-02-23
Complete rooftop duct casting,WEEK 1,Roofing & Rooftop,Not Started,High,false,,2026-02-17,2026-02-23
`

// ResourceTemplate is the downloadable example for resource imports.
const ResourceTemplate = `name,type,quantity,unit,cost_per_unit,milestone,milestone_date,supplier,status,notes
Cement bags,Material,500,bags,2500,WEEK 1,2026-02-17,Dangote,Planned,First delivery for plastering
Tilers (gang),Labour,8,persons,25000,WEEK 2,2026-02-24,Subcontractor A,Planned,
Aluminium roofing sheets,Material,120,sheets,45000,WEEK 1,2026-02-17,Roofing Ltd,Ordered,
Lift unit,Equipment,1,unit,4500000,WEEK 4,2026-03-09,Otis Nigeria,Planned,Full installation
`

// Template returns the template for kind, "tasks" or "resources".
func Template(kind string) (string, bool) {
	switch kind {
	case "tasks":
		return TaskTemplate, true
	case "resources":
		return ResourceTemplate, true
	}
	return "", false
}
