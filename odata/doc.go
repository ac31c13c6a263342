// Package odata compiles strongly-typed predicates over a record schema into
// the filter grammar understood by SharePoint's OData-style REST endpoints.
//
// The builder is a typestate protocol. Each call returns a new handle whose
// type only offers the calls that are legal next:
//
//	Where[S]()            Query[S]          field selection, All, Some
//	  .TextField(key)     TextField[S]      operators valid for text
//	    .EqualTo("David") Result[S]         And, Or, String
//	      .And()          FieldSelector[S]  field selection
//
// Comparing a text field with a number, selecting a field declared on another
// schema, or navigating more than one lookup hop are compile errors rather
// than runtime failures. The package therefore has no error returns.
//
// # Schemas
//
// A schema is any Go type used as a type parameter. Its fields are declared
// once as typed keys, usually as package-level variables (the codegen command
// of spquery writes these from a CUE schema):
//
//	type Employee struct{}
//	type Department struct{}
//
//	var (
//		EmployeeFirstname  = odata.Text[Employee]("Firstname")
//		EmployeeAge        = odata.Number[Employee]("Age")
//		EmployeeDepartment = odata.Lookup[Employee, Department]("Department")
//		DepartmentNumber   = odata.Number[Department]("DepartmentNumber")
//	)
//
//	odata.Where[Employee]().
//		TextField(EmployeeFirstname).StartsWith("D").
//		And().
//		NumberField(EmployeeDepartment.Number(DepartmentNumber)).In(50, 51).
//		String()
//	// startswith(Firstname, 'D') and (Department/DepartmentNumber eq 50 or Department/DepartmentNumber eq 51)
//
// # Grouping
//
// Chained And and Or calls never introduce parentheses, so mixing them gives
// the grammar's own precedence. Use Query.All and Query.Some to group.
//
// # Literal encoding
//
// Text and date literals are wrapped in single quotes without escaping
// embedded quotes, matching what existing consumers of these filters expect.
// Callers that interpolate untrusted text must sanitize it first.
//
// All values are immutable. A Result may be shared between goroutines and
// reused as the seed of several independent chains.
package odata
