package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role keys for the three enrollable participant slots of a case.
const (
	RoleJudge   = "judge"
	RoleAuthor  = "author"  // plaintiff counsel (polo ativo)
	RolePassive = "passive" // defendant counsel (polo passivo)
)

// RoleKeys lists the enrollable roles in display order.
var RoleKeys = []string{RoleJudge, RoleAuthor, RolePassive}

// Case status values.
const (
	StatusPendente  = "Pendente"
	StatusAtivo     = "Ativo"
	StatusArquivado = "Arquivado"
	StatusSuspenso  = "Suspenso"
	StatusJulgado   = "Julgado"
)

// TerminalStatus reports whether a status ends the case lifecycle.
func TerminalStatus(status string) bool {
	return status == StatusArquivado || status == StatusJulgado
}

// Case holds the structure for the cases collection in mongo
type Case struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details CaseDetails        `json:"case" bson:"case"`
	Version int32              `json:"__v" bson:"__v"`
}

// CaseDetails holds the structure for the inner case details
type CaseDetails struct {
	CaseNumber  string `json:"caseNumber" bson:"caseNumber"` // PROC-<year>-<seq>, unique
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Type        string `json:"type" bson:"type"`
	Status      string `json:"status" bson:"status"`
	Instance    int    `json:"instance" bson:"instance"`

	// Parties is the structured record of the two poles; PartiesDisplay is
	// the denormalized human-readable list derived from it.
	Parties        Parties  `json:"parties" bson:"parties"`
	PartiesDisplay []string `json:"partiesDisplay" bson:"partiesDisplay"`

	// Participants maps a role key to the actor holding it. A missing key
	// means the role is unfilled. Entries are only ever written through the
	// store's conditional claim, never overwritten in place.
	Participants map[string]Participant `json:"participants" bson:"participants"`

	// Timeline is the case's own append-only event history.
	Timeline []TimelineEntry `json:"timeline" bson:"timeline"`

	// ThreadID is the discussion surface the case panel lives in. Empty
	// until the surface is created; replaced exactly once per escalation.
	ThreadID string `json:"threadID" bson:"threadID"`

	NextHearingAt    primitive.DateTime `json:"nextHearingAt,omitempty" bson:"nextHearingAt,omitempty"`
	NextHearingLabel string             `json:"nextHearingLabel,omitempty" bson:"nextHearingLabel,omitempty"`

	CreatedBy ActorRef           `json:"createdBy" bson:"createdBy"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Parties holds the two poles of a case.
type Parties struct {
	Active  Party `json:"active" bson:"active"`
	Passive Party `json:"passive" bson:"passive"`
}

// Party identifies one pole: display name plus the external-system id.
type Party struct {
	Name    string `json:"name" bson:"name"`
	StateID string `json:"stateId" bson:"stateId"`
}

// Participant is the single tagged representation of an enrolled actor.
// External identities are converted to this shape at the enrollment
// boundary; nothing downstream needs to guess between mention strings,
// bare names and objects.
type Participant struct {
	ActorID    string `json:"id" bson:"id"`
	DisplayTag string `json:"tag,omitempty" bson:"tag,omitempty"`
}

// ActorRef records who performed an action.
type ActorRef struct {
	ID  string `json:"id" bson:"id"`
	Tag string `json:"tag" bson:"tag"`
}

// TimelineEntry records one event in a case's timeline. Action-specific
// fields are omitted when empty so entries stay compact.
type TimelineEntry struct {
	Action       string             `json:"action" bson:"action"`
	By           string             `json:"by" bson:"by"`
	Role         string             `json:"role,omitempty" bson:"role,omitempty"`
	From         int                `json:"from,omitempty" bson:"from,omitempty"`
	To           int                `json:"to,omitempty" bson:"to,omitempty"`
	Status       string             `json:"status,omitempty" bson:"status,omitempty"`
	Target       string             `json:"target,omitempty" bson:"target,omitempty"`
	DeadlineDays int                `json:"deadlineDays,omitempty" bson:"deadlineDays,omitempty"`
	When         primitive.DateTime `json:"when,omitempty" bson:"when,omitempty"`
	Active       string             `json:"active,omitempty" bson:"active,omitempty"`
	Passive      string             `json:"passive,omitempty" bson:"passive,omitempty"`
	At           primitive.DateTime `json:"at" bson:"at"`
}

// Timeline action names.
const (
	TimelineCreated           = "created"
	TimelineEnable            = "enable"
	TimelineEscalated         = "escalated"
	TimelineDetailsUpdated    = "case_details_updated"
	TimelineNamesUpdated      = "parties_names_updated"
	TimelineIDsUpdated        = "parties_ids_updated"
	TimelineIntimationIssued  = "intimation_issued"
	TimelineHearingScheduled  = "hearing_scheduled"
	TimelineDocumentProtocols = "protocol_initiated"
)
