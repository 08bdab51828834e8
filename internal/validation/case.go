// Package validation sanitizes raw request payloads into strict drafts,
// collecting every field violation instead of failing on the first one.
package validation

import (
	"fmt"

	"github.com/inspektor-hq/inspektor/internal/models"
)

var publicationStatuses = map[models.PublicationStatus]bool{
	models.StatusDraft:     true,
	models.StatusPublished: true,
}

var personRoles = map[models.PersonRole]bool{
	models.RoleUnknown: true,
	models.RoleSuspect: true,
	models.RoleVictim:  true,
	models.RoleWitness: true,
}

var documentTypes = map[models.DocumentType]bool{
	models.DocPoliceReport:     true,
	models.DocForensicReport:   true,
	models.DocDossier:          true,
	models.DocWitnessStatement: true,
	models.DocSuspectStatement: true,
	models.DocVictimStatement:  true,
}

var progressStatuses = map[models.ProgressStatus]bool{
	models.ProgressInProgress: true,
	models.ProgressResolved:   true,
}

// sanitizePublicationStatus lowercases the value and defaults the empty
// string to draft. It returns "" for a non-empty value outside the allowed
// set, signalling an error to the caller.
func sanitizePublicationStatus(value any) models.PublicationStatus {
	status := models.PublicationStatus(lowerText(value))
	if status == "" {
		status = models.StatusDraft
	}
	if !publicationStatuses[status] {
		return ""
	}
	return status
}

func sanitizePersonRole(value any) models.PersonRole {
	role := models.PersonRole(lowerText(value))
	if role == "" {
		role = models.RoleUnknown
	}
	if !personRoles[role] {
		return ""
	}
	return role
}

func sanitizeDocumentType(value any) models.DocumentType {
	docType := models.DocumentType(lowerText(value))
	if !documentTypes[docType] {
		return ""
	}
	return docType
}

func sanitizeProgressStatus(value any) models.ProgressStatus {
	status := models.ProgressStatus(lowerText(value))
	if status == "" {
		status = models.ProgressInProgress
	}
	if !progressStatuses[status] {
		return ""
	}
	return status
}

func validatePeople(raw any, errors FieldErrors) []models.PersonDraft {
	list := asList(raw)
	people := make([]models.PersonDraft, 0, len(list))

	for index, entry := range list {
		person := asObject(entry)
		fullName := toText(person["fullName"])
		role := sanitizePersonRole(person["apparentRole"])
		biography := toText(person["biography"])

		if len([]rune(fullName)) < 2 {
			errors[fmt.Sprintf("people.%d.fullName", index)] = "person name must be at least 2 characters long"
		}
		if role == "" {
			errors[fmt.Sprintf("people.%d.apparentRole", index)] = "person role is not supported"
			role = models.RoleUnknown
		}

		people = append(people, models.PersonDraft{
			FullName:  fullName,
			Role:      role,
			Biography: biography,
		})
	}
	return people
}

func validateDocuments(raw any, errors FieldErrors) []models.DocumentDraft {
	list := asList(raw)
	documents := make([]models.DocumentDraft, 0, len(list))

	for index, entry := range list {
		document := asObject(entry)
		docType := sanitizeDocumentType(document["documentType"])
		title := toText(document["title"])
		content := toText(document["content"])
		// Invalid sequence orders are clamped silently, defaulting to the
		// 1-based submission position.
		sequenceOrder := toInteger(document["sequenceOrder"], index+1)
		if sequenceOrder < 1 {
			sequenceOrder = 1
		}
		unlocked := toBool(document["isUnlockedByDefault"])

		if docType == "" {
			errors[fmt.Sprintf("documents.%d.documentType", index)] = "document type is not supported"
			docType = models.DocPoliceReport
		}
		if len([]rune(title)) < 3 {
			errors[fmt.Sprintf("documents.%d.title", index)] = "document title must be at least 3 characters long"
		}
		if len([]rune(content)) < 10 {
			errors[fmt.Sprintf("documents.%d.content", index)] = "document content must be at least 10 characters long"
		}

		documents = append(documents, models.DocumentDraft{
			Type:              docType,
			Title:             title,
			Content:           content,
			SequenceOrder:     sequenceOrder,
			UnlockedByDefault: unlocked,
		})
	}
	return documents
}

func validateTimeline(raw any, errors FieldErrors) []models.TimelineDraft {
	list := asList(raw)
	timeline := make([]models.TimelineDraft, 0, len(list))

	for index, entry := range list {
		item := asObject(entry)
		itemType := models.TimelineItemType(lowerText(item["itemType"]))
		sourceIndex := toInteger(item["sourceIndex"], -1)
		unlockOrder := toInteger(item["unlockOrder"], index+1)
		if unlockOrder < 1 {
			unlockOrder = 1
		}
		unlockNote := toText(item["unlockNote"])

		if itemType != models.TimelinePerson && itemType != models.TimelineDocument {
			errors[fmt.Sprintf("timeline.%d.itemType", index)] = "timeline item must be person or document"
			itemType = models.TimelineDocument
		}
		if sourceIndex < 0 {
			errors[fmt.Sprintf("timeline.%d.sourceIndex", index)] = "timeline item must reference an existing person or document"
		}

		timeline = append(timeline, models.TimelineDraft{
			ItemType:    itemType,
			SourceIndex: sourceIndex,
			UnlockOrder: unlockOrder,
			UnlockNote:  unlockNote,
		})
	}
	return timeline
}

func validateProgressEntries(raw any, errors FieldErrors) []models.ProgressDraft {
	list := asList(raw)
	progress := make([]models.ProgressDraft, 0, len(list))

	for index, entry := range list {
		item := asObject(entry)
		userID := int64(toInteger(item["userId"], 0))
		status := sanitizeProgressStatus(item["progressStatus"])
		percent := clampInt(toInteger(item["progressPercent"], 0), 0, 100)

		var rating *float64
		if candidate, ok := item["userRating"]; ok && candidate != nil {
			value := clampFloat(toNumber(candidate, 0), 0, 5)
			rating = &value
		}

		if userID <= 0 {
			errors[fmt.Sprintf("progress.%d.userId", index)] = "progress entry must have a valid userId"
		}
		if status == "" {
			errors[fmt.Sprintf("progress.%d.progressStatus", index)] = "progress status is not supported"
			status = models.ProgressInProgress
		}

		progress = append(progress, models.ProgressDraft{
			UserID:  userID,
			Status:  status,
			Percent: percent,
			Rating:  rating,
		})
	}
	return progress
}

// ValidateCreateCasePayload sanitizes and type-checks a raw case-creation
// payload. It never fails fast: every violated rule ends up in the returned
// field error map, and the sanitized draft is always populated with defaults
// so the two outputs stay usable together.
func ValidateCreateCasePayload(payload map[string]any) (models.CaseDraft, FieldErrors) {
	errors := FieldErrors{}

	title := toText(payload["title"])
	description := toText(payload["description"])
	status := sanitizePublicationStatus(payload["publicationStatus"])
	people := validatePeople(payload["people"], errors)
	documents := validateDocuments(payload["documents"], errors)
	timeline := validateTimeline(payload["timeline"], errors)
	progress := validateProgressEntries(payload["progress"], errors)

	if len([]rune(title)) < 3 {
		errors["title"] = "case title must be at least 3 characters long"
	}
	if len([]rune(description)) < 20 {
		errors["description"] = "case description must be at least 20 characters long"
	}
	if status == "" {
		errors["publicationStatus"] = "publication status must be draft or published"
		status = models.StatusDraft
	}

	return models.CaseDraft{
		Title:       title,
		Description: description,
		Status:      status,
		People:      people,
		Documents:   documents,
		Timeline:    timeline,
		Progress:    progress,
	}, errors
}
