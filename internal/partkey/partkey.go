// Package partkey defines the composite identity of a stock position and the
// matching rule shared by reconciliation grouping, ledger joins, filters and
// condition-based deletes.
//
// Matching rule: drawing number and specification must be equal; for each
// optional field (finishing, supplier, note) NULL and empty string are
// interchangeable and both match each other. An empty filter value therefore
// means "only positions where the field is empty", never "ignore the field".
//
// In Go the empty string is the canonical empty representation: absent JSON
// fields decode to "" and NULL columns scan to "", so two keys denote the same
// position exactly when they are equal. SQL predicates built by Condition keep
// the NULL half of the rule alive for rows stored with NULL optionals.
package partkey

import "strings"

type Key struct {
	DrawingNumber string
	Specification string
	Finishing     string
	Supplier      string
	Note          string
}

// Matches reports whether two keys denote the same stock position.
func (k Key) Matches(other Key) bool {
	return k == other
}

// Condition builds a SQL predicate selecting rows whose part key matches k.
// Optional fields requested as empty match both NULL and '' columns.
func Condition(k Key) (string, []any) {
	conds := []string{"drawing_number = ?", "specification = ?"}
	args := []any{k.DrawingNumber, k.Specification}

	for _, f := range []struct {
		column string
		value  string
	}{
		{"finishing", k.Finishing},
		{"supplier", k.Supplier},
		{"note", k.Note},
	} {
		if f.value == "" {
			conds = append(conds, "("+f.column+" IS NULL OR "+f.column+" = '')")
		} else {
			conds = append(conds, f.column+" = ?")
			args = append(args, f.value)
		}
	}

	return "(" + strings.Join(conds, " AND ") + ")", args
}
