package api

import (
	"github.com/gin-gonic/gin"

	"rentalmanager/internal/metrics"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(metrics.Middleware())
	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.POST("/v1/auth/login", handler.Login)
	router.POST("/v1/auth/logout", handler.Logout)

	api := router.Group("/v1", handler.RequireToken())
	property := api.Group("/properties/:" + paramProperty)

	handler.properties().mount(api, "/properties")
	handler.users().mount(api, "/users")

	rooms := handler.rooms()
	rooms.mount(api, "/rooms")
	rooms.mount(property, "/rooms")

	tenants := handler.tenants()
	tenants.mount(api, "/tenants")
	tenants.mount(property, "/tenants")

	contracts := handler.contracts()
	contracts.mount(api, "/contracts")
	contracts.mount(property, "/contracts")

	invoices := handler.invoices()
	invoices.mount(api, "/invoices")
	invoices.mount(property, "/invoices")

	extraFees := handler.extraFees()
	extraFees.mount(api, "/extra-fees")
	extraFees.mount(property, "/extra-fees")

	meters := handler.utilityMeters()
	meters.mount(api, "/utility-meters")
	meters.mount(property, "/utility-meters")

	// readings and payments also nest under their meter or invoice
	readings := handler.utilityMeterReadings()
	readings.mount(api, "/utility-meter-readings")
	readings.mount(api, "/utility-meters/:"+paramMeter+"/readings")
	readings.mount(property, "/utility-meters/:"+paramMeter+"/readings")

	payments := handler.payments()
	payments.mount(api, "/payments")
	payments.mount(api, "/invoices/:"+paramInvoice+"/payments")
	payments.mount(property, "/invoices/:"+paramInvoice+"/payments")
}
