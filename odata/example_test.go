package odata_test

import (
	"fmt"
	"time"

	"github.com/roach88/spquery/odata"
)

type Employee struct{}
type Department struct{}

var (
	EmployeeFirstname  = odata.Text[Employee]("Firstname")
	EmployeeLastname   = odata.Text[Employee]("Lastname")
	EmployeeEmployed   = odata.Boolean[Employee]("Employed")
	EmployeeCreated    = odata.Date[Employee]("Created")
	EmployeeDepartment = odata.Lookup[Employee, Department]("Department")

	DepartmentNumber = odata.Number[Department]("DepartmentNumber")
)

func ExampleWhere() {
	fmt.Println(odata.Where[Employee]().TextField(EmployeeFirstname).EqualTo("David"))
	// Output: Firstname eq 'David'
}

func ExampleLookupKey_Number() {
	filter := odata.Where[Employee]().
		NumberField(EmployeeDepartment.Number(DepartmentNumber)).In(50, 51)
	fmt.Println(filter)
	// Output: (Department/DepartmentNumber eq 50 or Department/DepartmentNumber eq 51)
}

func ExampleBooleanField_IsFalseOrNull() {
	fmt.Println(odata.Where[Employee]().BooleanField(EmployeeEmployed).IsFalseOrNull())
	// Output: (Employed eq 0 or Employed eq null)
}

func ExampleQuery_All() {
	q := odata.Where[Employee]()
	filter := q.All(
		q.TextField(EmployeeFirstname).StartsWith("D"),
		q.TextField(EmployeeLastname).Contains("oft"),
	)
	fmt.Println(filter)
	// Output: (startswith(Firstname, 'D') and substringof('oft', Lastname))
}

func ExampleDateField_IsBetween() {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 31, 23, 59, 59, 999_000_000, time.UTC)
	fmt.Println(odata.Where[Employee]().DateField(EmployeeCreated).IsBetween(start, end))
	// Output: (Created ge '2023-01-01T00:00:00.000Z' and Created le '2023-12-31T23:59:59.999Z')
}
