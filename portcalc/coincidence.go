package portcalc

// step holds an entry in a coincidence table: the factor that
// applies from the given unit count upwards.
type step struct {
	count  int
	factor float64
}

// The coincidence tables follow ceiling/(1 + 0.15*(n-2)):
// generalSteps with a ceiling of 0.9, sparseSteps with a
// ceiling of 0.5. Entries must be sorted by count.
var (
	generalSteps = []step{
		{2, 0.9},
		{3, 0.782608695652174},
		{4, 0.6923076923076923},
		{5, 0.6206896551724138},
		{6, 0.5625},
		{7, 0.5142857142857143},
		{8, 0.4736842105263158},
		{10, 0.40909090909090906},
		{12, 0.36},
		{14, 0.32142857142857145},
		{16, 0.2903225806451613},
		{20, 0.24324324324324326},
		{25, 0.202247191011236},
		{30, 0.17307692307692307},
		{40, 0.13432835820895522},
		{50, 0.10975609756097562},
	}
	sparseSteps = []step{
		{2, 0.5},
		{3, 0.4347826086956522},
		{4, 0.3846153846153846},
		{5, 0.3448275862068966},
		{6, 0.3125},
		{7, 0.2857142857142857},
		{8, 0.2631578947368421},
		{10, 0.22727272727272727},
		{12, 0.2},
		{14, 0.17857142857142858},
		{16, 0.16129032258064516},
		{20, 0.13513513513513514},
		{25, 0.11235955056179778},
		{30, 0.09615384615384615},
		{40, 0.07462686567164178},
		{50, 0.06097560975609757},
	}
)

// Coincidence returns the factor by which the summed peak demand
// of count identical units is de-rated because they rarely
// all draw peak power at the same instant.
func Coincidence(table CoincidenceTable, count int) float64 {
	switch table {
	case CoincidenceGeneral:
		return stepLookup(generalSteps, count)
	case CoincidenceSparse:
		return stepLookup(sparseSteps, count)
	}
	panic("unexpected coincidence table")
}

// stepLookup returns the factor of the entry with the largest count
// not greater than n. Counts beyond the end of the table use the
// last entry; counts of one or less are not de-rated.
func stepLookup(steps []step, n int) float64 {
	if n <= 1 || len(steps) == 0 {
		return 1
	}
	factor := 1.0
	for _, s := range steps {
		if s.count > n {
			break
		}
		factor = s.factor
	}
	return factor
}
