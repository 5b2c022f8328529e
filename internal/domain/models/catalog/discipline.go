package catalog

import "fmt"

// Discipline is the competition field a work was submitted under.
// The set is closed; filter values outside it are rejected rather than
// silently matching nothing.
type Discipline string

const (
	DisciplineMathematics    Discipline = "Mathematics"
	DisciplinePhysics        Discipline = "Physics"
	DisciplineChemistry      Discipline = "Chemistry"
	DisciplineBiology        Discipline = "Biology"
	DisciplineInformatics    Discipline = "Informatics"
	DisciplineEngineering    Discipline = "Engineering"
	DisciplineEarthSciences  Discipline = "Earth Sciences"
	DisciplineHealthcare     Discipline = "Healthcare"
	DisciplineAgriculture    Discipline = "Agriculture"
	DisciplineEconomics      Discipline = "Economics"
	DisciplineSocialSciences Discipline = "Social Sciences"
	DisciplineHistory        Discipline = "History"
	DisciplinePhilology      Discipline = "Philology"
	DisciplineArtsCulture    Discipline = "Arts and Culture"
	DisciplinePedagogy       Discipline = "Pedagogy"
)

var disciplines = map[Discipline]bool{
	DisciplineMathematics:    true,
	DisciplinePhysics:        true,
	DisciplineChemistry:      true,
	DisciplineBiology:        true,
	DisciplineInformatics:    true,
	DisciplineEngineering:    true,
	DisciplineEarthSciences:  true,
	DisciplineHealthcare:     true,
	DisciplineAgriculture:    true,
	DisciplineEconomics:      true,
	DisciplineSocialSciences: true,
	DisciplineHistory:        true,
	DisciplinePhilology:      true,
	DisciplineArtsCulture:    true,
	DisciplinePedagogy:       true,
}

// ParseDiscipline converts a string into a Discipline.
// Returns an error for values outside the closed set.
func ParseDiscipline(s string) (Discipline, error) {
	d := Discipline(s)
	if !disciplines[d] {
		return "", fmt.Errorf("unknown discipline: %q", s)
	}
	return d, nil
}
