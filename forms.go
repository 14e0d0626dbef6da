package crfgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
)

// Order decides the sequence in which forms are rendered and merged.
type Order int

const (
	ByAppearance Order = iota // order of first appearance in the dictionary
	ByName                    // lexical order of form names
)

func (o Order) String() string {
	switch o {
	case ByAppearance:
		return "appearance"
	case ByName:
		return "name"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps "appearance" (or "") and "name" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "appearance":
		return ByAppearance, nil
	case "name":
		return ByName, nil
	}
	return ByAppearance, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// Form is the ordered subset of records that make up one document.
type Form struct {
	Name    string
	Records []field.Record
}

// GroupForms partitions records by form name. Records keep their relative
// order inside each form.
func GroupForms(records []field.Record, order Order) []Form {
	var forms []Form
	index := map[string]int{}
	for _, rec := range records {
		i, ok := index[rec.Form]
		if !ok {
			i = len(forms)
			index[rec.Form] = i
			forms = append(forms, Form{Name: rec.Form})
		}
		forms[i].Records = append(forms[i].Records, rec)
	}
	if order == ByName {
		sort.SliceStable(forms, func(i, j int) bool { return forms[i].Name < forms[j].Name })
	}
	return forms
}

// selectForms keeps the named forms, in their existing order. An empty
// selection keeps everything.
func selectForms(forms []Form, names []string) []Form {
	if len(names) == 0 {
		return forms
	}
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	var out []Form
	for _, f := range forms {
		if want[f.Name] {
			out = append(out, f)
		}
	}
	return out
}
