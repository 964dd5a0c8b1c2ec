package entity

// Role is the single authorization category attached to a user.
// Values are wire-level contracts shared with the clients and must not
// be renamed.
type Role string

const (
	RolePatient      Role = "PATIENT"
	RoleDoctor       Role = "DOCTOR"
	RoleAdmin        Role = "ADMIN"
	RoleLab          Role = "LAB"
	RolePhlebotomist Role = "PHLEBOTOMIST"
	RolePharmacy     Role = "PHARMACY"
	RoleDelivery     Role = "DELIVERY"
)

// AllRoles lists every role in the system.
var AllRoles = []Role{
	RolePatient,
	RoleDoctor,
	RoleAdmin,
	RoleLab,
	RolePhlebotomist,
	RolePharmacy,
	RoleDelivery,
}

// RoleDisplay is the portal-facing presentation of a role.
type RoleDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var roleDisplays = map[Role]RoleDisplay{
	RolePatient:      {Label: "Patient", Color: "blue"},
	RoleDoctor:       {Label: "Doctor", Color: "green"},
	RoleAdmin:        {Label: "Care Coordinator", Color: "purple"},
	RoleLab:          {Label: "Lab Technician", Color: "orange"},
	RolePhlebotomist: {Label: "Phlebotomist", Color: "teal"},
	RolePharmacy:     {Label: "Pharmacy", Color: "indigo"},
	RoleDelivery:     {Label: "Delivery Partner", Color: "gray"},
}

func (r Role) Valid() bool {
	_, ok := roleDisplays[r]
	return ok
}

// Display returns the presentation metadata for the role. Unknown values
// indicate schema drift between services and resolve to a logged fallback.
func (r Role) Display() RoleDisplay {
	if d, ok := roleDisplays[r]; ok {
		return d
	}
	warnUnmappedStatus("role", string(r))
	return RoleDisplay{Label: "Unknown", Color: "gray"}
}
