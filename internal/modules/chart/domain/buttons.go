package domain

const AllLabel = "All"

// ButtonSpec is one dropdown entry: pressing it applies Visible to the
// figure's layers, index for index.
type ButtonSpec struct {
	Label   string
	Visible []bool
}

// ButtonSet returns "All" followed by one button per category. Vectors have
// len(categories)+1 entries: slot 0 is the legend layer, which stays visible,
// and slot i+1 is category i.
func ButtonSet(categories []string) []ButtonSpec {
	size := len(categories) + 1
	all := make([]bool, size)
	for i := range all {
		all[i] = true
	}
	out := make([]ButtonSpec, 0, size)
	out = append(out, ButtonSpec{Label: AllLabel, Visible: all})
	for i, category := range categories {
		visible := make([]bool, size)
		visible[0] = true
		visible[i+1] = true
		out = append(out, ButtonSpec{Label: category, Visible: visible})
	}
	return out
}
