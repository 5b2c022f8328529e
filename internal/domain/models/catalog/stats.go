package catalog

// CatalogStats summarizes the catalog for the admin dashboard.
type CatalogStats struct {
	TotalWorks    int                `json:"total_works"`
	ApprovedWorks int                `json:"approved_works"`
	ByYear        map[int]int        `json:"works_by_year"`
	ByDiscipline  map[Discipline]int `json:"works_by_discipline"`
}
