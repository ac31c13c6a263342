// Package predicate compiles declarative predicate documents into OData
// filter text.
//
// A document names a list declared in a schema registry and a tree of
// conditions:
//
//	list: Employee
//	where:
//	  all:
//	    - {field: Title, op: eq, value: Developer}
//	    - some:
//	        - {field: Age, op: ge, value: 30}
//	        - {field: Department, lookup: Title, op: starts_with, value: Eng}
//	    - {field: Department, lookup_id: true, op: in, values: [1, 2]}
//	    - {field: Hired, op: between, from: 2023-01-01, to: 2023-12-31}
//
// Every condition is checked against the field's declared kind before the
// filter is built with package odata, so a compiled document always yields
// the filter the typed builder would produce for the same conditions.
package predicate
