package graphql

import (
	"context"

	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/usecase"

	"github.com/graphql-go/graphql"
)

// Resolver wires the query surface to the usecase layer. The GraphQL
// endpoint is a read-only companion to the REST portals; mutations go
// through REST where the full validation pipeline lives.
type Resolver struct {
	authUsecase         usecase.AuthUsecase
	patientUsecase      usecase.PatientUsecase
	labOrderUsecase     usecase.LabOrderUsecase
	pharmacyUsecase     usecase.PharmacyOrderUsecase
	sessionUsecase      usecase.VideoSessionUsecase
	subscriptionUsecase usecase.SubscriptionUsecase
}

func NewResolver(
	authUsecase usecase.AuthUsecase,
	patientUsecase usecase.PatientUsecase,
	labOrderUsecase usecase.LabOrderUsecase,
	pharmacyUsecase usecase.PharmacyOrderUsecase,
	sessionUsecase usecase.VideoSessionUsecase,
	subscriptionUsecase usecase.SubscriptionUsecase,
) *Resolver {
	return &Resolver{
		authUsecase:         authUsecase,
		patientUsecase:      patientUsecase,
		labOrderUsecase:     labOrderUsecase,
		pharmacyUsecase:     pharmacyUsecase,
		sessionUsecase:      sessionUsecase,
		subscriptionUsecase: subscriptionUsecase,
	}
}

// requireRole enforces the same decision the REST role middleware makes:
// an empty requirement admits anyone, otherwise an authenticated
// principal with a matching role is required.
func requireRole(ctx context.Context, required ...entity.Role) error {
	role, ok := middleware.GetRoleFromContext(ctx)
	if len(required) == 0 {
		return nil
	}
	if !ok {
		return unauthenticated()
	}
	rolePtr := &role
	if !middleware.RoleAllowed(required, rolePtr) {
		return forbidden()
	}
	return nil
}

var statusFields = graphql.Fields{
	"status":      &graphql.Field{Type: graphql.String},
	"statusLabel": &graphql.Field{Type: graphql.String},
	"statusIcon":  &graphql.Field{Type: graphql.String},
}

func newObject(name string, fields graphql.Fields) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
}

// NewSchema builds the query schema. Field resolvers return the same
// DTOs the REST layer serves, so both surfaces present identical shapes.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := newObject("User", graphql.Fields{
		"id":        &graphql.Field{Type: graphql.ID},
		"email":     &graphql.Field{Type: graphql.String},
		"fullName":  &graphql.Field{Type: graphql.String},
		"role":      &graphql.Field{Type: graphql.String},
		"roleLabel": &graphql.Field{Type: graphql.String},
		"roleColor": &graphql.Field{Type: graphql.String},
	})

	profileType := newObject("PatientProfile", graphql.Fields{
		"userId":      &graphql.Field{Type: graphql.ID},
		"email":       &graphql.Field{Type: graphql.String},
		"fullName":    &graphql.Field{Type: graphql.String},
		"phoneNumber": &graphql.Field{Type: graphql.String},
		"dateOfBirth": &graphql.Field{Type: graphql.String},
		"gender":      &graphql.Field{Type: graphql.String},
		"address":     &graphql.Field{Type: graphql.String},
	})

	bookedSlotType := newObject("BookedSlot", withStatus(graphql.Fields{
		"id":      &graphql.Field{Type: graphql.ID},
		"startAt": &graphql.Field{Type: graphql.DateTime},
		"endAt":   &graphql.Field{Type: graphql.DateTime},
	}))

	labOrderType := newObject("LabOrder", withStatus(graphql.Fields{
		"id":        &graphql.Field{Type: graphql.ID},
		"vertical":  &graphql.Field{Type: graphql.String},
		"panelName": &graphql.Field{Type: graphql.String},
		"notes":     &graphql.Field{Type: graphql.String},
		"slot":      &graphql.Field{Type: bookedSlotType},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	}))

	slaType := newObject("SLA", graphql.Fields{
		"status":       &graphql.Field{Type: graphql.String},
		"reason":       &graphql.Field{Type: graphql.String},
		"hoursOverdue": &graphql.Field{Type: graphql.Int},
		"deadlineAt":   &graphql.Field{Type: graphql.DateTime},
	})

	escalationItemType := newObject("EscalationItem", graphql.Fields{
		"order":       &graphql.Field{Type: labOrderType},
		"patientName": &graphql.Field{Type: graphql.String},
		"sla":         &graphql.Field{Type: slaType},
	})

	prescriptionItemType := newObject("PrescriptionItem", graphql.Fields{
		"medication": &graphql.Field{Type: graphql.String},
		"dosage":     &graphql.Field{Type: graphql.String},
		"frequency":  &graphql.Field{Type: graphql.String},
		"duration":   &graphql.Field{Type: graphql.String},
	})

	prescriptionType := newObject("Prescription", graphql.Fields{
		"id":         &graphql.Field{Type: graphql.ID},
		"vertical":   &graphql.Field{Type: graphql.String},
		"doctorName": &graphql.Field{Type: graphql.String},
		"items":      &graphql.Field{Type: graphql.NewList(prescriptionItemType)},
		"notes":      &graphql.Field{Type: graphql.String},
		"createdAt":  &graphql.Field{Type: graphql.DateTime},
	})

	pharmacyOrderType := newObject("PharmacyOrder", withStatus(graphql.Fields{
		"id":            &graphql.Field{Type: graphql.ID},
		"vertical":      &graphql.Field{Type: graphql.String},
		"deliveryNotes": &graphql.Field{Type: graphql.String},
		"createdAt":     &graphql.Field{Type: graphql.DateTime},
	}))

	videoSessionType := newObject("VideoSession", withStatus(graphql.Fields{
		"id":        &graphql.Field{Type: graphql.ID},
		"slotId":    &graphql.Field{Type: graphql.Int},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	}))

	planType := newObject("Plan", graphql.Fields{
		"id":           &graphql.Field{Type: graphql.ID},
		"name":         &graphql.Field{Type: graphql.String},
		"vertical":     &graphql.Field{Type: graphql.String},
		"description":  &graphql.Field{Type: graphql.String},
		"monthlyPrice": &graphql.Field{Type: graphql.String},
		"durationDays": &graphql.Field{Type: graphql.Int},
	})

	subscriptionType := newObject("PlanSubscription", withStatus(graphql.Fields{
		"id":        &graphql.Field{Type: graphql.ID},
		"startedAt": &graphql.Field{Type: graphql.DateTime},
		"expiresAt": &graphql.Field{Type: graphql.DateTime},
		"plan":      &graphql.Field{Type: planType},
	}))

	queryType := newObject("Query", graphql.Fields{
		"me": &graphql.Field{
			Type: userType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if err := requireRole(p.Context, entity.AllRoles...); err != nil {
					return nil, err
				}
				userID, _ := middleware.GetUserIDFromContext(p.Context)
				return r.authUsecase.GetCurrentUser(p.Context, userID)
			},
		},
		"myProfile": &graphql.Field{
			Type: profileType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if err := requireRole(p.Context, entity.RolePatient); err != nil {
					return nil, err
				}
				userID, _ := middleware.GetUserIDFromContext(p.Context)
				return r.patientUsecase.GetMyProfile(p.Context, userID)
			},
		},
		"myLabOrders": &graphql.Field{
			Type: graphql.NewList(labOrderType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if err := requireRole(p.Context, entity.RolePatient); err != nil {
					return nil, err
				}
				userID, _ := middleware.GetUserIDFromContext(p.Context)
				list, err := r.labOrderUsecase.GetMyOrders(p.Context, userID)
				if err != nil {
					return nil, err
				}
				return list.Orders, nil
			},
		},
		"myPrescriptions": &graphql.Field{
			Type: graphql.NewList(prescriptionType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if err := requireRole(p.Context, entity.RolePatient); err != nil {
					return nil, err
				}
				userID, _ := middleware.GetUserIDFromContext(p.Context)
				list, err := r.pharmacyUsecase.GetMyPrescriptions(p.Context, userID)
				if err != nil {
					return nil, err
				}
				return list.Prescriptions, nil
			},
		},
		"myOrders": &graphql.Field{
			Type: graphql.NewList(pharmacyOrderType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if err := requireRole(p.Context, entity.RolePatient); err != nil {
					return nil, err
				}
				userID, _ := middleware.GetUserIDFromContext(p.Context)
				list, err := r.pharmacyUsecase.GetMyOrders(p.Context, userID)
				if err != nil {
					return nil, err
				}
				return list.Orders, nil
			},
		},
		"mySessions": &graphql.Field{
			Type: graphql.NewList(videoSessionType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if err := requireRole(p.Context, entity.RolePatient); err != nil {
					return nil, err
				}
				userID, _ := middleware.GetUserIDFromContext(p.Context)
				list, err := r.sessionUsecase.GetMySessions(p.Context, userID)
				if err != nil {
					return nil, err
				}
				return list.Sessions, nil
			},
		},
		"mySubscriptions": &graphql.Field{
			Type: graphql.NewList(subscriptionType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if err := requireRole(p.Context, entity.RolePatient); err != nil {
					return nil, err
				}
				userID, _ := middleware.GetUserIDFromContext(p.Context)
				list, err := r.subscriptionUsecase.GetMySubscriptions(p.Context, userID)
				if err != nil {
					return nil, err
				}
				return list.Subscriptions, nil
			},
		},
		"plans": &graphql.Field{
			Type: graphql.NewList(planType),
			Args: graphql.FieldConfigArgument{
				"vertical": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				vertical, _ := p.Args["vertical"].(string)
				list, err := r.subscriptionUsecase.ListPlans(p.Context, vertical)
				if err != nil {
					if err == usecase.ErrInvalidVertical {
						return nil, badUserInput("Invalid vertical")
					}
					return nil, err
				}
				return list.Plans, nil
			},
		},
		"escalationBoard": &graphql.Field{
			Type: graphql.NewList(escalationItemType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if err := requireRole(p.Context, entity.RoleAdmin, entity.RoleLab); err != nil {
					return nil, err
				}
				board, err := r.labOrderUsecase.EscalationBoard(p.Context)
				if err != nil {
					return nil, err
				}
				return board.Items, nil
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// withStatus merges the shared status display fields into a field set.
func withStatus(fields graphql.Fields) graphql.Fields {
	for name, field := range statusFields {
		fields[name] = field
	}
	return fields
}
