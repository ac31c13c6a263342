// Package schema is the runtime registry of record (list) schemas.
//
// The odata package checks field kinds at compile time through typed keys.
// Tools that only learn schemas at runtime (the predicate compiler, the
// accessor generator) use this registry instead. Every kind and reference
// problem is reported when a record is registered or the registry is
// validated, never while a filter is being built.
//
// Schemas are written in CUE:
//
//	package hr
//
//	list: Employee: fields: {
//		Id:         kind: "number"
//		Firstname:  kind: "text"
//		Employed:   kind: "boolean"
//		Created:    kind: "date"
//		Skills:     kind: "text_collection"
//		Department: {kind: "lookup", target: "Department"}
//	}
//
// Field order is the declaration order.
package schema
