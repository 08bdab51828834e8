// Package models defines the core data structures for users, cases and
// their nested details.
package models

import "time"

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// FirstName is the user's given name.
	FirstName string `json:"firstName"`
	// LastName is the user's family name.
	LastName string `json:"lastName"`
	// Email is the unique login email, stored lowercased.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// PublicationStatus defines the visibility of a case.
type PublicationStatus string

const (
	// StatusDraft marks a case visible only to its author.
	StatusDraft PublicationStatus = "draft"
	// StatusPublished marks a case visible to every user.
	StatusPublished PublicationStatus = "published"
)

// PersonRole defines the apparent role of a person within a case.
type PersonRole string

const (
	RoleUnknown PersonRole = "unknown"
	RoleSuspect PersonRole = "suspect"
	RoleVictim  PersonRole = "victim"
	RoleWitness PersonRole = "witness"
)

// DocumentType defines the kind of a case document.
type DocumentType string

const (
	DocPoliceReport     DocumentType = "police_report"
	DocForensicReport   DocumentType = "forensic_report"
	DocDossier          DocumentType = "dossier"
	DocWitnessStatement DocumentType = "witness_statement"
	DocSuspectStatement DocumentType = "suspect_statement"
	DocVictimStatement  DocumentType = "victim_statement"
)

// TimelineItemType discriminates what a timeline item unlocks.
type TimelineItemType string

const (
	TimelinePerson   TimelineItemType = "person"
	TimelineDocument TimelineItemType = "document"
)

// ProgressStatus defines how far a user is through a case.
type ProgressStatus string

const (
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressResolved   ProgressStatus = "resolved"
)

// Case is the persisted case row joined with its author's name.
type Case struct {
	ID              int64             `json:"id"`
	AuthorUserID    int64             `json:"authorUserId"`
	AuthorFirstName string            `json:"authorFirstName"`
	AuthorLastName  string            `json:"authorLastName"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          PublicationStatus `json:"publicationStatus"`
	AverageRating   float64           `json:"averageRating"`
	RatingCount     int64             `json:"ratingCount"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// PersonDraft is a sanitized person entry from a case submission.
type PersonDraft struct {
	FullName  string     `json:"fullName"`
	Role      PersonRole `json:"apparentRole"`
	Biography string     `json:"biography"`
}

// DocumentDraft is a sanitized document entry from a case submission.
type DocumentDraft struct {
	Type              DocumentType `json:"documentType"`
	Title             string       `json:"title"`
	Content           string       `json:"content"`
	SequenceOrder     int          `json:"sequenceOrder"`
	UnlockedByDefault bool         `json:"isUnlockedByDefault"`
}

// TimelineDraft is a sanitized timeline entry from a case submission.
// SourceIndex is a zero-based position into the submission's people or
// documents slice, depending on ItemType; it is translated into a generated
// identifier only at persistence time.
type TimelineDraft struct {
	ItemType    TimelineItemType `json:"itemType"`
	SourceIndex int              `json:"sourceIndex"`
	UnlockOrder int              `json:"unlockOrder"`
	UnlockNote  string           `json:"unlockNote"`
}

// ProgressDraft is a sanitized per-user progress entry from a case
// submission. Rating is nil when the user has not rated the case.
type ProgressDraft struct {
	UserID  int64          `json:"userId"`
	Status  ProgressStatus `json:"progressStatus"`
	Percent int            `json:"progressPercent"`
	Rating  *float64       `json:"userRating"`
}

// CaseDraft is the sanitized, validated representation of a case-creation
// submission prior to persistence.
type CaseDraft struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      PublicationStatus `json:"publicationStatus"`
	People      []PersonDraft     `json:"people"`
	Documents   []DocumentDraft   `json:"documents"`
	Timeline    []TimelineDraft   `json:"timeline"`
	Progress    []ProgressDraft   `json:"progress"`
}

// TimelineTarget identifies the entity a persisted timeline item unlocks.
// It is a tagged variant: exactly one of the document or person id is set,
// guaranteed by the constructors.
type TimelineTarget struct {
	itemType TimelineItemType
	id       int64
}

// DocumentTarget returns a target pointing at a persisted document.
func DocumentTarget(id int64) TimelineTarget {
	return TimelineTarget{itemType: TimelineDocument, id: id}
}

// PersonTarget returns a target pointing at a persisted person.
func PersonTarget(id int64) TimelineTarget {
	return TimelineTarget{itemType: TimelinePerson, id: id}
}

// Type reports which kind of entity the target points at.
func (t TimelineTarget) Type() TimelineItemType {
	return t.itemType
}

// DocumentID returns the document id and true when the target is a document.
func (t TimelineTarget) DocumentID() (int64, bool) {
	if t.itemType == TimelineDocument {
		return t.id, true
	}
	return 0, false
}

// PersonID returns the person id and true when the target is a person.
func (t TimelineTarget) PersonID() (int64, bool) {
	if t.itemType == TimelinePerson {
		return t.id, true
	}
	return 0, false
}
