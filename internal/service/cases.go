// Package service provides the business logic for authentication, case
// creation and the logged home view, delegating persistence to repository
// interfaces.
package service

import (
	"context"
	"fmt"

	"github.com/inspektor-hq/inspektor/internal/models"
	"github.com/inspektor-hq/inspektor/internal/validation"
)

// CaseRepository defines the persistence operations required by the case
// service.
type CaseRepository interface {
	// CreateCaseWithDetails persists a validated draft atomically and
	// returns the committed case projection.
	CreateCaseWithDetails(ctx context.Context, authorUserID int64, draft models.CaseDraft) (*models.Case, error)
	// FindCaseByIDForAuthor loads a case only when the given author owns it.
	FindCaseByIDForAuthor(ctx context.Context, caseID, authorUserID int64) (*models.Case, error)
}

// HomeRepository defines the read-side queries behind the home view.
type HomeRepository interface {
	GetHomeOverview(ctx context.Context, userID int64) (*models.HomeOverview, error)
}

// CaseService implements case creation and the case-centric read paths.
type CaseService struct {
	repo CaseRepository
	home HomeRepository
}

// NewCaseService constructs a CaseService using the provided repositories.
func NewCaseService(repo CaseRepository, home HomeRepository) *CaseService {
	return &CaseService{repo: repo, home: home}
}

// CreateCaseTotals counts the rows persisted alongside the case itself.
type CreateCaseTotals struct {
	People          int `json:"people"`
	Documents       int `json:"documents"`
	TimelineItems   int `json:"timelineItems"`
	ProgressEntries int `json:"progressEntries"`
}

// CreateCaseResult is the response payload of a successful case creation.
type CreateCaseResult struct {
	Case   *models.Case     `json:"case"`
	Totals CreateCaseTotals `json:"totals"`
}

// resolveTimelineReferences confirms every timeline entry points inside the
// submitted people/documents lists and that unlock orders are pairwise
// distinct. Only later repeats of an unlock order are flagged; the first
// occurrence stays clean.
func resolveTimelineReferences(draft models.CaseDraft, errors validation.FieldErrors) {
	usedOrders := map[int]bool{}

	for index, item := range draft.Timeline {
		if item.ItemType == models.TimelineDocument && item.SourceIndex >= len(draft.Documents) {
			errors[fmt.Sprintf("timeline.%d.sourceIndex", index)] = "timeline document does not exist in the documents list"
		}
		if item.ItemType == models.TimelinePerson && item.SourceIndex >= len(draft.People) {
			errors[fmt.Sprintf("timeline.%d.sourceIndex", index)] = "timeline person does not exist in the people list"
		}

		if usedOrders[item.UnlockOrder] {
			errors[fmt.Sprintf("timeline.%d.unlockOrder", index)] = "unlock order must be unique"
			continue
		}
		usedOrders[item.UnlockOrder] = true
	}
}

// ensureAuthorProgress guarantees the author owns a progress row on their
// own case: when the submission carries none, a fresh in-progress entry is
// prepended.
func ensureAuthorProgress(progress []models.ProgressDraft, authorUserID int64) []models.ProgressDraft {
	for _, entry := range progress {
		if entry.UserID == authorUserID {
			return progress
		}
	}

	bootstrap := models.ProgressDraft{
		UserID:  authorUserID,
		Status:  models.ProgressInProgress,
		Percent: 0,
		Rating:  nil,
	}
	return append([]models.ProgressDraft{bootstrap}, progress...)
}

// CreateCase validates and persists a raw case-creation payload on behalf of
// the authenticated author. All validation and resolution failures are
// aggregated into a single *validation.Error before anything is written;
// persistence failures roll back completely and are propagated unchanged.
func (s *CaseService) CreateCase(ctx context.Context, authorUserID int64, payload map[string]any) (*CreateCaseResult, error) {
	draft, errors := validation.ValidateCreateCasePayload(payload)

	for _, entry := range draft.Progress {
		if entry.UserID != authorUserID {
			errors["progress"] = "progress can currently be saved only for the case author"
			break
		}
	}

	resolveTimelineReferences(draft, errors)
	if len(errors) > 0 {
		return nil, validation.ErrorFor(errors)
	}

	draft.Progress = ensureAuthorProgress(draft.Progress, authorUserID)

	caseRow, err := s.repo.CreateCaseWithDetails(ctx, authorUserID, draft)
	if err != nil {
		return nil, err
	}

	return &CreateCaseResult{
		Case: caseRow,
		Totals: CreateCaseTotals{
			People:          len(draft.People),
			Documents:       len(draft.Documents),
			TimelineItems:   len(draft.Timeline),
			ProgressEntries: len(draft.Progress),
		},
	}, nil
}

// GetCreatorCase loads a case for the creator-mode view. Cases owned by
// other authors look exactly like missing ones.
func (s *CaseService) GetCreatorCase(ctx context.Context, caseID, authorUserID int64) (*models.Case, error) {
	return s.repo.FindCaseByIDForAuthor(ctx, caseID, authorUserID)
}

// HomeSections groups the case lists rendered on the logged home page.
type HomeSections struct {
	ActiveCases         []models.HomeActiveCase   `json:"activeCases"`
	ResolvedCases       []models.HomeResolvedCase `json:"resolvedCases"`
	TopRatedPublicCases []models.HomeTopRatedCase `json:"topRatedPublicCases"`
	CreatedCases        []models.HomeCreatedCase  `json:"createdCases"`
}

// HomeOverviewResult is the response payload of the logged home view.
type HomeOverviewResult struct {
	Summary  models.HomeStats `json:"summary"`
	Sections HomeSections     `json:"sections"`
}

// GetLoggedHomeOverview assembles the summary and sections for the user's
// home page.
func (s *CaseService) GetLoggedHomeOverview(ctx context.Context, userID int64) (*HomeOverviewResult, error) {
	overview, err := s.home.GetHomeOverview(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &HomeOverviewResult{
		Summary: overview.Stats,
		Sections: HomeSections{
			ActiveCases:         overview.ActiveCases,
			ResolvedCases:       overview.ResolvedCases,
			TopRatedPublicCases: overview.TopRatedCases,
			CreatedCases:        overview.CreatedCases,
		},
	}, nil
}
