package transform

import (
	"encoding/json"
	"time"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

var contractDecoder = schema.New("contract",
	schema.Int("id", func(c *models.Contract, v int64) { c.ID = v }),
	schema.Int("roomId", func(c *models.Contract, v int64) { c.RoomID = v }),
	schema.Int("tenantId", func(c *models.Contract, v int64) { c.TenantID = v }),
	schema.Raw("room", func(c *models.Contract, v json.RawMessage) { c.Room = v }),
	schema.Raw("tenant", func(c *models.Contract, v json.RawMessage) { c.Tenant = v }),
	schema.Time("startDate", func(c *models.Contract, v time.Time) { c.StartDate = v }),
	schema.OptTime("endDate", func(c *models.Contract, v *time.Time) { c.EndDate = v }),
	schema.Float("depositAmount", func(c *models.Contract, v float64) { c.DepositAmount = v }, schema.Default(0.0)),
	schema.Enum("status", models.ContractStatuses, func(c *models.Contract, v models.ContractStatus) { c.Status = v }, schema.Default(models.ContractActive)),
	schema.Enum("paymentCycle", models.PaymentCycles, func(c *models.Contract, v models.PaymentCycle) { c.PaymentCycle = v }, schema.Default(models.CycleMonthly)),
	createdAt(func(c *models.Contract, v time.Time) { c.CreatedAt = v }),
	updatedAt(func(c *models.Contract, v time.Time) { c.UpdatedAt = v }),
)

var Contracts = newEntity("contract", "contracts", contractDecoder,
	func(in models.CreateContractInput) schema.Body {
		b := schema.Body{}
		b.Set("roomId", in.RoomID)
		b.Set("tenantId", in.TenantID)
		b.Set("startDate", in.StartDate)
		schema.SetNullable(b, "endDate", in.EndDate)
		schema.SetOr(b, "depositAmount", in.DepositAmount, 0)
		schema.SetOr(b, "status", in.Status, models.ContractActive)
		schema.SetOr(b, "paymentCycle", in.PaymentCycle, models.CycleMonthly)
		return b
	},
	func(in models.UpdateContractInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "roomId", in.RoomID)
		schema.SetPtr(b, "tenantId", in.TenantID)
		schema.SetPtr(b, "startDate", in.StartDate)
		schema.SetOptional(b, "endDate", in.EndDate)
		schema.SetPtr(b, "depositAmount", in.DepositAmount)
		schema.SetPtr(b, "status", in.Status)
		schema.SetPtr(b, "paymentCycle", in.PaymentCycle)
		return b
	},
)
