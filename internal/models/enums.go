package models

import "slices"

// String enumerations carried by the entity records. Each type lists its values
// in declaration order; the first listed value of a lifecycle status is the
// initial state used when a create input leaves it out.

type PropertyStatus string

const (
	PropertyInactive    PropertyStatus = "inactive"
	PropertyActive      PropertyStatus = "active"
	PropertyMaintenance PropertyStatus = "maintenance"
)

var PropertyStatuses = []string{string(PropertyInactive), string(PropertyActive), string(PropertyMaintenance)}

// Code returns the numeric form the API stores for a property status.
func (s PropertyStatus) Code() int {
	switch s {
	case PropertyActive:
		return 1
	case PropertyMaintenance:
		return 2
	default:
		return 0
	}
}

// PropertyStatusFromCode maps the numeric API value back to the enumeration.
// Unknown codes fall back to inactive.
func PropertyStatusFromCode(code int) PropertyStatus {
	switch code {
	case 1:
		return PropertyActive
	case 2:
		return PropertyMaintenance
	default:
		return PropertyInactive
	}
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

var RoomStatuses = []string{string(RoomAvailable), string(RoomOccupied), string(RoomMaintenance)}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = []string{string(GenderMale), string(GenderFemale), string(GenderOther)}

type ContractStatus string

const (
	ContractActive    ContractStatus = "active"
	ContractEnded     ContractStatus = "ended"
	ContractCancelled ContractStatus = "cancelled"
)

var ContractStatuses = []string{string(ContractActive), string(ContractEnded), string(ContractCancelled)}

type PaymentCycle string

const (
	CycleMonthly   PaymentCycle = "monthly"
	CycleQuarterly PaymentCycle = "quarterly"
	CycleYearly    PaymentCycle = "yearly"
)

var PaymentCycles = []string{string(CycleMonthly), string(CycleQuarterly), string(CycleYearly)}

type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "unpaid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
)

var InvoiceStatuses = []string{string(InvoiceUnpaid), string(InvoicePartiallyPaid), string(InvoicePaid), string(InvoiceOverdue)}

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodOnline       PaymentMethod = "online"
)

var PaymentMethods = []string{string(MethodCash), string(MethodBankTransfer), string(MethodOnline)}

type ChargeType string

const (
	ChargeMonthly ChargeType = "monthly"
	ChargeOneTime ChargeType = "one_time"
)

var ChargeTypes = []string{string(ChargeMonthly), string(ChargeOneTime)}

type MeterType string

const (
	MeterElectricity MeterType = "electricity"
	MeterWater       MeterType = "water"
)

var MeterTypes = []string{string(MeterElectricity), string(MeterWater)}

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

var UserRoles = []string{string(RoleUser), string(RoleAdmin)}

func (v PropertyStatus) Valid() bool { return slices.Contains(PropertyStatuses, string(v)) }

func (v RoomStatus) Valid() bool { return slices.Contains(RoomStatuses, string(v)) }

func (v Gender) Valid() bool { return slices.Contains(Genders, string(v)) }

func (v ContractStatus) Valid() bool { return slices.Contains(ContractStatuses, string(v)) }

func (v PaymentCycle) Valid() bool { return slices.Contains(PaymentCycles, string(v)) }

func (v InvoiceStatus) Valid() bool { return slices.Contains(InvoiceStatuses, string(v)) }

func (v PaymentMethod) Valid() bool { return slices.Contains(PaymentMethods, string(v)) }

func (v ChargeType) Valid() bool { return slices.Contains(ChargeTypes, string(v)) }

func (v MeterType) Valid() bool { return slices.Contains(MeterTypes, string(v)) }

func (v UserRole) Valid() bool { return slices.Contains(UserRoles, string(v)) }
