package api

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentalmanager/internal/database"
	"rentalmanager/internal/models"
	"rentalmanager/internal/transform"
)

// Path parameters. Routes sharing a prefix must use the same names.
const (
	paramID       = "id"
	paramProperty = "propertyId"
	paramMeter    = "meterId"
	paramInvoice  = "invoiceId"
)

// byParent scopes a query to column = the id in path parameter param, when
// the route carries it.
func byParent(param, column string) func(c *gin.Context) ([]database.Scope, error) {
	return func(c *gin.Context) ([]database.Scope, error) {
		id, err := pathID(c, param)
		if err != nil || id == 0 {
			return nil, err
		}
		return []database.Scope{database.Where(column, id)}, nil
	}
}

// injectParent copies the id in path parameter param into field of a create
// body.
func injectParent(params map[string]string) func(c *gin.Context, body map[string]any) error {
	return func(c *gin.Context, body map[string]any) error {
		for param, field := range params {
			id, err := pathID(c, param)
			if err != nil {
				return err
			}
			if id != 0 {
				body[field] = id
			}
		}
		return nil
	}
}

// propertyView carries the numeric status code the API uses on the wire.
type propertyView struct {
	models.Property
	Status int `json:"status"`
}

func (h *Handler) properties() *resource[models.Property] {
	return &resource[models.Property]{
		h:       h,
		name:    "property",
		plural:  "properties",
		idParam: paramProperty,
		decode:  transform.Properties.Decode,
		filters: func(c *gin.Context) []database.Scope {
			scopes := nameFilter(c, "name")
			if raw := strings.TrimSpace(c.Query("status")); raw != "" {
				status := models.PropertyStatus(raw)
				if code, err := strconv.Atoi(raw); err == nil {
					status = models.PropertyStatusFromCode(code)
				}
				scopes = append(scopes, database.Where("status", status))
			}
			return append(scopes, queryFilters(c, map[string]string{"userId": "user_id", "code": "code"})...)
		},
		beforeSave: func(tx *gorm.DB, _ map[string]any, rec, _ *models.Property) error {
			if strings.TrimSpace(rec.Code) != "" {
				return nil
			}
			code, err := database.UniquePropertyCode(tx, rec.Name)
			if err != nil {
				return err
			}
			rec.Code = code
			return nil
		},
		present: func(p models.Property) any {
			return propertyView{Property: p, Status: p.Status.Code()}
		},
	}
}

func (h *Handler) rooms() *resource[models.Room] {
	return &resource[models.Room]{
		h:       h,
		name:    "room",
		plural:  "rooms",
		idParam: paramID,
		decode:  transform.Rooms.Decode,
		parents: byParent(paramProperty, "property_id"),
		inject:  injectParent(map[string]string{paramProperty: "propertyId"}),
		filters: func(c *gin.Context) []database.Scope {
			return append(nameFilter(c, "name"), queryFilters(c, map[string]string{"status": "status"})...)
		},
		embed: embedRoomTenants,
	}
}

// embedRoomTenants attaches the tenants holding an active contract on each
// room.
func embedRoomTenants(db *gorm.DB, rooms []models.Room) {
	for i := range rooms {
		var tenants []models.Tenant
		active := db.Session(&gorm.Session{NewDB: true}).Model(&models.Contract{}).
			Select("tenant_id").Where("room_id = ? AND status = ?", rooms[i].ID, models.ContractActive)
		if err := db.Where("id IN (?)", active).Order("id").Find(&tenants).Error; err != nil {
			continue
		}
		rooms[i].Tenants, _ = json.Marshal(tenants)
	}
}

func (h *Handler) tenants() *resource[models.Tenant] {
	return &resource[models.Tenant]{
		h:       h,
		name:    "tenant",
		plural:  "tenants",
		idParam: paramID,
		decode:  transform.Tenants.Decode,
		parents: func(c *gin.Context) ([]database.Scope, error) {
			id, err := pathID(c, paramProperty)
			if err != nil || id == 0 {
				return nil, err
			}
			return []database.Scope{database.TenantsOfProperty(id)}, nil
		},
		filters: func(c *gin.Context) []database.Scope {
			return nameFilter(c, "full_name")
		},
	}
}

func (h *Handler) contracts() *resource[models.Contract] {
	return &resource[models.Contract]{
		h:       h,
		name:    "contract",
		plural:  "contracts",
		idParam: paramID,
		decode:  transform.Contracts.Decode,
		parents: func(c *gin.Context) ([]database.Scope, error) {
			id, err := pathID(c, paramProperty)
			if err != nil || id == 0 {
				return nil, err
			}
			return []database.Scope{database.RoomsOfProperty(id)}, nil
		},
		filters: func(c *gin.Context) []database.Scope {
			return queryFilters(c, map[string]string{"status": "status", "roomId": "room_id", "tenantId": "tenant_id"})
		},
		beforeSave: func(tx *gorm.DB, _ map[string]any, rec, _ *models.Contract) error {
			if _, err := database.Get[models.Room](tx, rec.RoomID); err != nil {
				return badRequest("Room %d does not exist", rec.RoomID)
			}
			if _, err := database.Get[models.Tenant](tx, rec.TenantID); err != nil {
				return badRequest("Tenant %d does not exist", rec.TenantID)
			}
			return nil
		},
		embed: embedContractParties,
	}
}

// embedContractParties attaches the room and tenant of each contract.
func embedContractParties(db *gorm.DB, contracts []models.Contract) {
	for i := range contracts {
		if room, err := database.Get[models.Room](db, contracts[i].RoomID); err == nil {
			contracts[i].Room, _ = json.Marshal(room)
		}
		if tenant, err := database.Get[models.Tenant](db, contracts[i].TenantID); err == nil {
			contracts[i].Tenant, _ = json.Marshal(tenant)
		}
	}
}

func (h *Handler) invoices() *resource[models.Invoice] {
	return &resource[models.Invoice]{
		h:       h,
		name:    "invoice",
		plural:  "invoices",
		idParam: paramInvoice,
		decode:  transform.Invoices.Decode,
		parents: func(c *gin.Context) ([]database.Scope, error) {
			id, err := pathID(c, paramProperty)
			if err != nil || id == 0 {
				return nil, err
			}
			return []database.Scope{database.ContractsOfProperty(id)}, nil
		},
		inject: func(_ *gin.Context, body map[string]any) error {
			if body["invoiceDate"] == nil {
				body["invoiceDate"] = h.now().UTC()
			}
			return nil
		},
		filters: func(c *gin.Context) []database.Scope {
			return queryFilters(c, map[string]string{
				"status":     "status",
				"contractId": "contract_id",
				"month":      "month",
				"year":       "year",
			})
		},
		beforeSave: func(tx *gorm.DB, _ map[string]any, rec, _ *models.Invoice) error {
			if _, err := database.Get[models.Contract](tx, rec.ContractID); err != nil {
				return badRequest("Contract %d does not exist", rec.ContractID)
			}
			return nil
		},
	}
}

func (h *Handler) payments() *resource[models.Payment] {
	return &resource[models.Payment]{
		h:       h,
		name:    "payment",
		plural:  "payments",
		idParam: paramID,
		decode:  transform.Payments.Decode,
		parents: byParent(paramInvoice, "invoice_id"),
		inject:  injectParent(map[string]string{paramInvoice: "invoiceId"}),
		filters: func(c *gin.Context) []database.Scope {
			return queryFilters(c, map[string]string{"method": "method"})
		},
		beforeSave: func(tx *gorm.DB, _ map[string]any, rec, _ *models.Payment) error {
			if _, err := database.Get[models.Invoice](tx, rec.InvoiceID); err != nil {
				return badRequest("Invoice %d does not exist", rec.InvoiceID)
			}
			return nil
		},
	}
}

func (h *Handler) extraFees() *resource[models.ExtraFee] {
	return &resource[models.ExtraFee]{
		h:       h,
		name:    "extra fee",
		plural:  "extra fees",
		idParam: paramID,
		decode:  transform.ExtraFees.Decode,
		parents: byParent(paramProperty, "property_id"),
		inject:  injectParent(map[string]string{paramProperty: "propertyId"}),
		filters: func(c *gin.Context) []database.Scope {
			return nameFilter(c, "name")
		},
	}
}

func (h *Handler) utilityMeters() *resource[models.UtilityMeter] {
	return &resource[models.UtilityMeter]{
		h:       h,
		name:    "utility meter",
		plural:  "utility meters",
		idParam: paramMeter,
		decode:  transform.UtilityMeters.Decode,
		parents: byParent(paramProperty, "property_id"),
		inject:  injectParent(map[string]string{paramProperty: "propertyId"}),
		filters: func(c *gin.Context) []database.Scope {
			return queryFilters(c, map[string]string{"meterType": "meter_type", "roomId": "room_id"})
		},
	}
}

func (h *Handler) utilityMeterReadings() *resource[models.UtilityMeterReading] {
	return &resource[models.UtilityMeterReading]{
		h:       h,
		name:    "utility meter reading",
		plural:  "utility meter readings",
		idParam: paramID,
		decode:  transform.UtilityMeterReadings.Decode,
		parents: func(c *gin.Context) ([]database.Scope, error) {
			meters, err := byParent(paramMeter, "utility_meter_id")(c)
			if err != nil {
				return nil, err
			}
			properties, err := byParent(paramProperty, "property_id")(c)
			if err != nil {
				return nil, err
			}
			return append(meters, properties...), nil
		},
		inject: injectParent(map[string]string{
			paramMeter:    "utilityMeterId",
			paramProperty: "propertyId",
		}),
		beforeSave: func(tx *gorm.DB, _ map[string]any, rec, _ *models.UtilityMeterReading) error {
			if _, err := database.Get[models.UtilityMeter](tx, rec.UtilityMeterID); err != nil {
				return badRequest("Utility meter %d does not exist", rec.UtilityMeterID)
			}
			return nil
		},
	}
}

func (h *Handler) users() *resource[models.User] {
	return &resource[models.User]{
		h:       h,
		name:    "user",
		plural:  "users",
		idParam: paramID,
		decode:  transform.Users.Decode,
		filters: func(c *gin.Context) []database.Scope {
			return append(nameFilter(c, "name"), queryFilters(c, map[string]string{"role": "role"})...)
		},
		beforeSave: func(tx *gorm.DB, body map[string]any, rec, existing *models.User) error {
			if existing == nil {
				if password, _ := body["password"].(string); len(password) < 6 {
					return badRequest("password must be at least 6 characters")
				}
			}
			taken, err := database.EmailTaken(tx, rec.Email, rec.ID)
			if err != nil {
				return err
			}
			if taken {
				return badRequest("Email already taken")
			}
			return nil
		},
		afterSave: saveUserPassword,
	}
}

// saveUserPassword stores the password carried by a user body. Updates either
// pair currentPassword with newPassword or reset through password alone.
func saveUserPassword(tx *gorm.DB, body map[string]any, rec, existing *models.User) error {
	password, _ := body["password"].(string)
	current, _ := body["currentPassword"].(string)
	next, _ := body["newPassword"].(string)

	switch {
	case existing != nil && current != "" && next != "":
		if !database.CheckPassword(tx, rec.ID, current) {
			return badRequest("Current password is incorrect")
		}
		password = next
	case current != "" || next != "":
		return badRequest("currentPassword and newPassword must be sent together")
	}
	if password == "" {
		return nil
	}
	if len(password) < 6 {
		return badRequest("password must be at least 6 characters")
	}
	return database.SetPassword(tx, rec.ID, password)
}
