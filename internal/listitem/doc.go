// Package listitem implements the list item helpers that sit next to the
// filter builder: create-or-update, key/value projections for pickers and
// choice-field projections.
//
// The helpers talk to a Service, which is whatever executes requests
// against a list host. Filters are passed through as text, typically the
// String of an odata.Result.
//
//	q := odata.Where[Employee]()
//	pairs, err := listitem.ProjectAsKeyValuePairs(ctx, svc, "Employees", listitem.KVOptions{
//		AdditionalFields: []string{"Email"},
//		Filter:           q.BooleanField(EmployeeActive).IsTrue().String(),
//	})
package listitem
