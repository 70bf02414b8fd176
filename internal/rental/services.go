// Package rental wires one resource container per rental entity.
package rental

import (
	"os"

	"github.com/sirupsen/logrus"

	"rentalmanager/internal/auth"
	"rentalmanager/internal/client"
	"rentalmanager/internal/metrics"
	m "rentalmanager/internal/models"
	"rentalmanager/internal/notify"
	"rentalmanager/internal/resource"
	"rentalmanager/internal/transform"
)

type (
	PropertyContainer            = resource.Container[m.Property, m.CreatePropertyInput, m.UpdatePropertyInput]
	RoomContainer                = resource.Container[m.Room, m.CreateRoomInput, m.UpdateRoomInput]
	TenantContainer              = resource.Container[m.Tenant, m.CreateTenantInput, m.UpdateTenantInput]
	ContractContainer            = resource.Container[m.Contract, m.CreateContractInput, m.UpdateContractInput]
	InvoiceContainer             = resource.Container[m.Invoice, m.CreateInvoiceInput, m.UpdateInvoiceInput]
	PaymentContainer             = resource.Container[m.Payment, m.CreatePaymentInput, m.UpdatePaymentInput]
	ExtraFeeContainer            = resource.Container[m.ExtraFee, m.CreateExtraFeeInput, m.UpdateExtraFeeInput]
	UtilityMeterContainer        = resource.Container[m.UtilityMeter, m.CreateUtilityMeterInput, m.UpdateUtilityMeterInput]
	UtilityMeterReadingContainer = resource.Container[m.UtilityMeterReading, m.CreateUtilityMeterReadingInput, m.UpdateUtilityMeterReadingInput]
	UserContainer                = resource.Container[m.User, m.CreateUserInput, m.UpdateUserInput]
)

// Services is the single owner of the rental containers. Construct it once
// and share it with every consumer.
type Services struct {
	Auth *auth.Service

	Properties           *PropertyContainer
	Rooms                *RoomContainer
	Tenants              *TenantContainer
	Contracts            *ContractContainer
	Invoices             *InvoiceContainer
	Payments             *PaymentContainer
	ExtraFees            *ExtraFeeContainer
	UtilityMeters        *UtilityMeterContainer
	UtilityMeterReadings *UtilityMeterReadingContainer
	Users                *UserContainer
}

// NewServices builds the containers on top of c. Container operations are
// recorded in the metrics registry.
func NewServices(c *client.Client, session *auth.Session, notifier notify.Notifier, logger *logrus.Logger, opts ...resource.Option) *Services {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if notifier == nil {
		notifier = notify.NewLogger(logger)
	}
	opts = append([]resource.Option{
		resource.WithLogger(logger),
		resource.WithObserver(metrics.RecordOperation),
	}, opts...)

	return &Services{
		Auth: auth.NewService(c, session, logger),

		Properties: resource.New[m.Property, m.CreatePropertyInput, m.UpdatePropertyInput](
			resource.NewHTTPEndpoint(c, client.Properties, transform.Properties), notifier, opts...),
		Rooms: resource.New[m.Room, m.CreateRoomInput, m.UpdateRoomInput](
			resource.NewHTTPEndpoint(c, client.Rooms, transform.Rooms), notifier, opts...),
		Tenants: resource.New[m.Tenant, m.CreateTenantInput, m.UpdateTenantInput](
			resource.NewHTTPEndpoint(c, client.Tenants, transform.Tenants), notifier, opts...),
		Contracts: resource.New[m.Contract, m.CreateContractInput, m.UpdateContractInput](
			resource.NewHTTPEndpoint(c, client.Contracts, transform.Contracts), notifier, opts...),
		Invoices: resource.New[m.Invoice, m.CreateInvoiceInput, m.UpdateInvoiceInput](
			resource.NewHTTPEndpoint(c, client.Invoices, transform.Invoices), notifier, opts...),
		Payments: resource.New[m.Payment, m.CreatePaymentInput, m.UpdatePaymentInput](
			resource.NewHTTPEndpoint(c, client.Payments, transform.Payments), notifier, opts...),
		ExtraFees: resource.New[m.ExtraFee, m.CreateExtraFeeInput, m.UpdateExtraFeeInput](
			resource.NewHTTPEndpoint(c, client.ExtraFees, transform.ExtraFees), notifier, opts...),
		UtilityMeters: resource.New[m.UtilityMeter, m.CreateUtilityMeterInput, m.UpdateUtilityMeterInput](
			resource.NewHTTPEndpoint(c, client.UtilityMeters, transform.UtilityMeters), notifier, opts...),
		UtilityMeterReadings: resource.New[m.UtilityMeterReading, m.CreateUtilityMeterReadingInput, m.UpdateUtilityMeterReadingInput](
			resource.NewHTTPEndpoint(c, client.UtilityMeterReadings, transform.UtilityMeterReadings), notifier, opts...),
		Users: resource.New[m.User, m.CreateUserInput, m.UpdateUserInput](
			resource.NewHTTPEndpoint(c, client.Users, transform.Users), notifier, opts...),
	}
}

// Close tears every container down.
func (s *Services) Close() {
	s.Properties.Close()
	s.Rooms.Close()
	s.Tenants.Close()
	s.Contracts.Close()
	s.Invoices.Close()
	s.Payments.Close()
	s.ExtraFees.Close()
	s.UtilityMeters.Close()
	s.UtilityMeterReadings.Close()
	s.Users.Close()
}
