package models

import "time"

// Status is the lifecycle state of a record. A record starts as pending
// (a nominee) and becomes approved (a dev) exactly once; rejection deletes
// the row instead of introducing a third state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Expertise is the closed set of specialties a record can carry.
const (
	ExpertiseFrontend  = "frontend"
	ExpertiseBackend   = "backend"
	ExpertiseFullstack = "fullstack"
	ExpertiseQA        = "qa"
)

// Expertises lists every valid expertise value, in display order.
var Expertises = []string{
	ExpertiseFrontend,
	ExpertiseBackend,
	ExpertiseFullstack,
	ExpertiseQA,
}

// ExpertiseLabels maps stored values to what the templates render.
var ExpertiseLabels = map[string]string{
	ExpertiseFrontend:  "Frontend Developer",
	ExpertiseBackend:   "Backend Developer",
	ExpertiseFullstack: "Fullstack Developer",
	ExpertiseQA:        "QA",
}

// Provinces is the closed set of Argentine provinces a nominee can be from.
var Provinces = []string{
	"Buenos Aires",
	"Buenos Aires Capital Federal",
	"Catamarca",
	"Chaco",
	"Chubut",
	"Córdoba",
	"Corrientes",
	"Entre Ríos",
	"Formosa",
	"Jujuy",
	"La Pampa",
	"La Rioja",
	"Mendoza",
	"Misiones",
	"Neuquen",
	"Río Negro",
	"Salta",
	"San Juan",
	"San Luís",
	"Santa Cruz",
	"Santa Fe",
	"Santiago del Estero",
	"Tierra del Fuego",
	"Tucumán",
}

// ValidExpertise reports whether v is a member of the expertise set.
func ValidExpertise(v string) bool {
	for _, e := range Expertises {
		if e == v {
			return true
		}
	}
	return false
}

// ValidProvince reports whether v is a member of the province set.
func ValidProvince(v string) bool {
	for _, p := range Provinces {
		if p == v {
			return true
		}
	}
	return false
}

// Record is a directory entry. Pending records are nominees awaiting
// review; approved records show up in the public directory. The id and
// CreatedAt never change, approval only flips Status.
type Record struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	From      string    `json:"from"`
	Expertise string    `json:"expertise"`
	Link      string    `json:"link"`
	Reason    string    `json:"reason"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpertiseLabel returns the display form of the record's expertise.
func (r Record) ExpertiseLabel() string {
	if l, ok := ExpertiseLabels[r.Expertise]; ok {
		return l
	}
	return r.Expertise
}
