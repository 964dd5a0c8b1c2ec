package http

import (
	"net/http"

	"telehealth-api/internal/delivery/http/handler"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	patientHandler       *handler.PatientHandler
	labOrderHandler      *handler.LabOrderHandler
	pharmacyOrderHandler *handler.PharmacyOrderHandler
	videoSessionHandler  *handler.VideoSessionHandler
	subscriptionHandler  *handler.SubscriptionHandler
	auditLogHandler      *handler.AuditLogHandler
	graphqlHandler       http.Handler
	authMiddleware       *middleware.AuthMiddleware
	csrfMiddleware       *middleware.CSRFMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	labOrderHandler *handler.LabOrderHandler,
	pharmacyOrderHandler *handler.PharmacyOrderHandler,
	videoSessionHandler *handler.VideoSessionHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	auditLogHandler *handler.AuditLogHandler,
	graphqlHandler http.Handler,
	authMiddleware *middleware.AuthMiddleware,
	csrfMiddleware *middleware.CSRFMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		patientHandler:       patientHandler,
		labOrderHandler:      labOrderHandler,
		pharmacyOrderHandler: pharmacyOrderHandler,
		videoSessionHandler:  videoSessionHandler,
		subscriptionHandler:  subscriptionHandler,
		auditLogHandler:      auditLogHandler,
		graphqlHandler:       graphqlHandler,
		authMiddleware:       authMiddleware,
		csrfMiddleware:       csrfMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public, CSRF guarded)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.csrfMiddleware.Handle)
	auth.HandleFunc("/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// GraphQL endpoint (CSRF guarded, principal attached when present)
	gql := api.PathPrefix("/graphql").Subrouter()
	gql.Use(r.csrfMiddleware.Handle)
	gql.Use(r.authMiddleware.OptionalAuthenticate)
	gql.Handle("", r.graphqlHandler).Methods(http.MethodPost)

	// Patient portal
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/profile", r.patientHandler.GetMyProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.UpdateMyProfile).Methods(http.MethodPut)
	patient.HandleFunc("/lab-orders", r.labOrderHandler.GetMyOrders).Methods(http.MethodGet)
	patient.HandleFunc("/lab-orders/{id}/slot", r.labOrderHandler.BookCollectionSlot).Methods(http.MethodPost)
	patient.HandleFunc("/lab-orders/{id}/slot", r.labOrderHandler.CancelCollectionSlot).Methods(http.MethodDelete)
	patient.HandleFunc("/prescriptions", r.pharmacyOrderHandler.GetMyPrescriptions).Methods(http.MethodGet)
	patient.HandleFunc("/orders", r.pharmacyOrderHandler.GetMyOrders).Methods(http.MethodGet)
	patient.HandleFunc("/sessions", r.videoSessionHandler.BookSession).Methods(http.MethodPost)
	patient.HandleFunc("/sessions", r.videoSessionHandler.GetMySessions).Methods(http.MethodGet)
	patient.HandleFunc("/subscriptions", r.subscriptionHandler.Subscribe).Methods(http.MethodPost)
	patient.HandleFunc("/subscriptions", r.subscriptionHandler.GetMySubscriptions).Methods(http.MethodGet)

	// Doctor portal
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/lab-orders", r.labOrderHandler.CreateOrder).Methods(http.MethodPost)
	// Doctors record their review of results; the usecase rejects any
	// other status value for the DOCTOR role
	doctor.HandleFunc("/lab-orders/{id}/status", r.labOrderHandler.UpdateStatus).Methods(http.MethodPatch)
	doctor.HandleFunc("/prescriptions", r.pharmacyOrderHandler.CreatePrescription).Methods(http.MethodPost)
	doctor.HandleFunc("/sessions", r.videoSessionHandler.GetDoctorSessions).Methods(http.MethodGet)

	// Shared authenticated browse routes
	browse := api.PathPrefix("").Subrouter()
	browse.Use(r.authMiddleware.Authenticate)
	browse.HandleFunc("/doctors", r.videoSessionHandler.ListDoctors).Methods(http.MethodGet)
	browse.HandleFunc("/slots", r.videoSessionHandler.SearchSlots).Methods(http.MethodGet)
	browse.HandleFunc("/plans", r.subscriptionHandler.ListPlans).Methods(http.MethodGet)

	// Lab portal: lab sees order detail and moves samples through
	// processing, and assigns phlebotomists to booked collections
	lab := api.PathPrefix("/lab").Subrouter()
	lab.Use(r.authMiddleware.Authenticate)
	lab.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleLab))
	lab.HandleFunc("/orders/{id}", r.labOrderHandler.GetOrder).Methods(http.MethodGet)
	lab.HandleFunc("/orders/{id}/assign", r.labOrderHandler.AssignPhlebotomist).Methods(http.MethodPost)
	lab.HandleFunc("/orders/{id}/status", r.labOrderHandler.UpdateStatus).Methods(http.MethodPatch)

	// Phlebotomist portal: field staff report collection outcomes
	phlebotomist := api.PathPrefix("/phlebotomist").Subrouter()
	phlebotomist.Use(r.authMiddleware.Authenticate)
	phlebotomist.Use(middleware.RequireRole(entity.RolePhlebotomist))
	phlebotomist.HandleFunc("/orders/{id}/status", r.labOrderHandler.UpdateStatus).Methods(http.MethodPatch)

	// Pharmacy portal
	pharmacy := api.PathPrefix("/pharmacy").Subrouter()
	pharmacy.Use(r.authMiddleware.Authenticate)
	pharmacy.Use(middleware.RequireRole(entity.RolePharmacy))
	pharmacy.HandleFunc("/queue", r.pharmacyOrderHandler.GetQueue).Methods(http.MethodGet)
	pharmacy.HandleFunc("/orders/{id}", r.pharmacyOrderHandler.GetOrder).Methods(http.MethodGet)
	pharmacy.HandleFunc("/orders/{id}/status", r.pharmacyOrderHandler.UpdateOrderStatus).Methods(http.MethodPatch)

	// Delivery portal
	delivery := api.PathPrefix("/delivery").Subrouter()
	delivery.Use(r.authMiddleware.Authenticate)
	delivery.Use(middleware.RequireRole(entity.RoleDelivery))
	delivery.HandleFunc("/queue", r.pharmacyOrderHandler.GetQueue).Methods(http.MethodGet)
	delivery.HandleFunc("/orders/{id}/status", r.pharmacyOrderHandler.UpdateOrderStatus).Methods(http.MethodPatch)

	// Admin portal
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/staff", r.authHandler.RegisterStaff).Methods(http.MethodPost)
	admin.HandleFunc("/slots", r.videoSessionHandler.CreateSlot).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}", r.videoSessionHandler.UpdateSlot).Methods(http.MethodPut)
	admin.HandleFunc("/slots/{id}", r.videoSessionHandler.DeleteSlot).Methods(http.MethodDelete)
	admin.HandleFunc("/plans", r.subscriptionHandler.CreatePlan).Methods(http.MethodPost)
	admin.HandleFunc("/escalations", r.labOrderHandler.EscalationBoard).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Session status transitions are shared between doctor and admin
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(r.authMiddleware.Authenticate)
	sessions.Use(middleware.RequireAdminOrDoctor)
	sessions.HandleFunc("/{id}/status", r.videoSessionHandler.UpdateSessionStatus).Methods(http.MethodPatch)

	// Patients manage their own subscriptions, admins can intervene
	subscriptions := api.PathPrefix("/subscriptions").Subrouter()
	subscriptions.Use(r.authMiddleware.Authenticate)
	subscriptions.Use(middleware.RequireRole(entity.RolePatient, entity.RoleAdmin))
	subscriptions.HandleFunc("/{id}/status", r.subscriptionHandler.UpdateStatus).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
