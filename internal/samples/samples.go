// Package samples holds the reference employee/department schema and the
// filters it is documented with. The spquery samples command prints them and
// the golden tests pin their exact text.
package samples

import (
	"time"

	"github.com/roach88/spquery/odata"
)

// Department is the department list.
type Department struct{}

// Employee is the employee list.
type Employee struct{}

var (
	DepartmentID               = odata.Number[Department]("Id")
	DepartmentManager          = odata.Lookup[Department, Department]("Manager")
	DepartmentAlias            = odata.Text[Department]("Alias")
	DepartmentHasSharedMailbox = odata.Boolean[Department]("HasSharedMailbox")
	DepartmentNumber           = odata.Number[Department]("DepartmentNumber")

	EmployeeID           = odata.Number[Employee]("Id")
	EmployeeAge          = odata.Number[Employee]("Age")
	EmployeeFirstname    = odata.Text[Employee]("Firstname")
	EmployeeLastname     = odata.Text[Employee]("Lastname")
	EmployeeEmployed     = odata.Boolean[Employee]("Employed")
	EmployeeDepartment   = odata.Lookup[Employee, Department]("Department")
	EmployeeDepartmentID = odata.Lookup[Employee, Department]("DepartmentId")
	EmployeeManager      = odata.Lookup[Employee, Employee]("Manager")
	EmployeeCreated      = odata.Date[Employee]("Created")
)

// Sample is one named reference filter.
type Sample struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Filter      string `json:"filter"`
}

// All returns the reference filters. today is the instant the "today"
// sample is computed for; its Location decides the day boundaries.
func All(today time.Time) []Sample {
	q := odata.Where[Employee]()
	loc := today.Location()

	return []Sample{
		{
			Name:        "text_equality",
			Description: "single text comparison",
			Filter:      q.TextField(EmployeeFirstname).EqualTo("David").String(),
		},
		{
			Name:        "all_group",
			Description: "every operator family joined by All",
			Filter: q.All(
				q.LookupIdField(EmployeeDepartmentID).EqualTo(1),
				q.BooleanField(EmployeeEmployed).IsTrue(),
				q.NumberField(EmployeeAge).LessThanOrEqualTo(30),
				q.TextField(EmployeeDepartment.Text(DepartmentAlias)).EqualTo("Consulting"),
				q.NumberField(EmployeeDepartment.Number(DepartmentNumber)).GreaterThan(50),
				q.TextField(EmployeeFirstname).StartsWith("D"),
				q.TextField(EmployeeLastname).Contains("oft"),
				q.TextField(EmployeeManager.Text(EmployeeFirstname)).StartsWith("B"),
			).String(),
		},
		{
			Name:        "and_chain",
			Description: "the all_group filter as a flat And chain",
			Filter: q.LookupIdField(EmployeeDepartmentID).EqualTo(1).
				And().
				BooleanField(EmployeeEmployed).IsTrue().
				And().
				NumberField(EmployeeAge).LessThanOrEqualTo(30).
				And().
				TextField(EmployeeDepartment.Text(DepartmentAlias)).EqualTo("Consulting").
				And().
				NumberField(EmployeeDepartment.Number(DepartmentNumber)).GreaterThan(50).
				And().
				TextField(EmployeeFirstname).StartsWith("D").
				And().
				TextField(EmployeeLastname).Contains("oft").
				And().
				TextField(EmployeeManager.Text(EmployeeFirstname)).StartsWith("B").
				String(),
		},
		{
			Name:        "some_group",
			Description: "alternatives joined by Some",
			Filter: q.Some(
				q.NumberField(EmployeeDepartment.Number(DepartmentNumber)).EqualTo(50),
				q.NumberField(EmployeeDepartment.Number(DepartmentNumber)).EqualTo(51),
				q.NumberField(EmployeeDepartment.Number(DepartmentNumber)).EqualTo(52),
				q.NumberField(EmployeeDepartment.Number(DepartmentNumber)).EqualTo(53),
			).String(),
		},
		{
			Name:        "or_chain",
			Description: "the some_group filter as a flat Or chain",
			Filter: q.NumberField(EmployeeDepartment.Number(DepartmentNumber)).EqualTo(50).
				Or().
				NumberField(EmployeeDepartment.Number(DepartmentNumber)).EqualTo(51).
				Or().
				NumberField(EmployeeDepartment.Number(DepartmentNumber)).EqualTo(52).
				Or().
				NumberField(EmployeeDepartment.Number(DepartmentNumber)).EqualTo(53).
				String(),
		},
		{
			Name:        "in_list",
			Description: "the some_group filter written with In",
			Filter:      q.NumberField(EmployeeDepartment.Number(DepartmentNumber)).In(50, 51, 52, 53).String(),
		},
		{
			Name:        "today",
			Description: "created today in the local time zone",
			Filter:      q.DateField(EmployeeCreated).IsOnDay(today).String(),
		},
		{
			Name:        "between",
			Description: "created during 2023 in the local time zone",
			Filter: q.DateField(EmployeeCreated).IsBetween(
				time.Date(2023, 1, 1, 0, 0, 0, 0, loc),
				time.Date(2023, 12, 31, 23, 59, 59, 999_000_000, loc),
			).String(),
		},
		{
			Name:        "false_or_null",
			Description: "not employed, including items saved before the column existed",
			Filter:      q.BooleanField(EmployeeEmployed).IsFalseOrNull().String(),
		},
	}
}
