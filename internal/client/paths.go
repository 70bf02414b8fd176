package client

import (
	"fmt"
	"strings"
)

// Scope holds the parent resource ids that nest an endpoint. Zero means the
// parent is not set.
type Scope struct {
	PropertyID int64
	MeterID    int64
	InvoiceID  int64
}

// Collection is a top level API collection.
type Collection string

const (
	Properties           Collection = "properties"
	Rooms                Collection = "rooms"
	Tenants              Collection = "tenants"
	Contracts            Collection = "contracts"
	Invoices             Collection = "invoices"
	Payments             Collection = "payments"
	ExtraFees            Collection = "extra-fees"
	UtilityMeters        Collection = "utility-meters"
	UtilityMeterReadings Collection = "utility-meter-readings"
	Users                Collection = "users"
)

// Path builds the route of the collection, or of one member when id is
// non-zero. Property scoped collections nest under /properties/{id}; readings
// nest under their meter and payments under their invoice when those are set.
// Properties and users never nest.
func (c Collection) Path(scope Scope, id int64) string {
	var b strings.Builder
	b.WriteString(APIPrefix)

	nestProperty := scope.PropertyID != 0
	switch c {
	case Properties, Users:
		nestProperty = false
	}
	if nestProperty {
		fmt.Fprintf(&b, "/properties/%d", scope.PropertyID)
	}

	switch {
	case c == UtilityMeterReadings && scope.MeterID != 0:
		fmt.Fprintf(&b, "/%s/%d/readings", UtilityMeters, scope.MeterID)
	case c == Payments && scope.InvoiceID != 0:
		fmt.Fprintf(&b, "/%s/%d/payments", Invoices, scope.InvoiceID)
	case c == UtilityMeterReadings || c == Payments:
		// flat routes do not nest under a property
		b.Reset()
		b.WriteString(APIPrefix)
		fmt.Fprintf(&b, "/%s", c)
	default:
		fmt.Fprintf(&b, "/%s", c)
	}

	if id != 0 {
		fmt.Fprintf(&b, "/%d", id)
	}
	return b.String()
}
