package repositories

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/pkg/apperrors"
)

// SubmissionRepository handles document store operations for submissions
type SubmissionRepository struct {
	submissions docstore.Collection
	logger      zerolog.Logger
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(store docstore.Store, logger zerolog.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		submissions: store.Collection(submissionsCollection),
		logger:      logger.With().Str("component", "submission_repository").Logger(),
	}
}

// Submit inserts a student's first submission for an assignment with
// status submitted. Re-submission goes through Update against the
// existing record; callers check GetStudentSubmission first.
func (r *SubmissionRepository) Submit(ctx context.Context, assignmentID, studentID, studentName string, input models.SubmissionInput) (*models.Submission, error) {
	files := input.Files
	if files == nil {
		files = []models.SubmissionFile{}
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		StudentName:  studentName,
		Files:        files,
		Notes:        input.Notes,
		SubmittedAt:  docstore.Now(),
		Status:       models.SubmissionSubmitted,
	}

	data, err := docData(submission)
	if err != nil {
		return nil, err
	}
	id, err := r.submissions.Insert(ctx, data)
	if err != nil {
		r.logger.Error().Err(err).Str("assignmentId", assignmentID).Str("studentId", studentID).Msg("Failed to create submission")
		return nil, apperrors.NewStoreUnavailableError("failed to submit assignment")
	}

	submission.ID = id
	return submission, nil
}

// GetByID retrieves a submission by id.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	doc, err := r.submissions.Get(ctx, id)
	if err != nil {
		if apperrors.Is(err, docstore.ErrNotFound) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, apperrors.NewStoreUnavailableError("failed to fetch submission")
	}
	return decodeSubmission(doc)
}

// GetStudentSubmission returns the student's submission for an assignment,
// or (nil, nil) when none exists. Callers use the nil result to decide
// between first submit and re-submission.
func (r *SubmissionRepository) GetStudentSubmission(ctx context.Context, assignmentID, studentID string) (*models.Submission, error) {
	docs, err := r.submissions.Find(ctx, docstore.Query{}.
		Where("assignmentId", assignmentID).
		Where("studentId", studentID))
	if err != nil {
		r.logger.Error().Err(err).Str("assignmentId", assignmentID).Str("studentId", studentID).Msg("Failed to fetch student submission")
		return nil, apperrors.NewStoreUnavailableError("failed to fetch submission")
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return decodeSubmission(&docs[0])
}

// Update merges the mutable fields into the submission and refreshes the
// submission timestamp. Serves both student re-submission and teacher
// grading; who may do which is the service layer's concern.
func (r *SubmissionRepository) Update(ctx context.Context, id string, upd models.SubmissionUpdate) error {
	fields, err := docstore.DataFrom(upd)
	if err != nil {
		return err
	}
	fields["submittedAt"] = docstore.Now()

	if err := r.submissions.Update(ctx, id, fields); err != nil {
		if apperrors.Is(err, docstore.ErrNotFound) {
			return apperrors.ErrSubmissionNotFound
		}
		r.logger.Error().Err(err).Str("submissionId", id).Msg("Failed to update submission")
		return apperrors.NewStoreUnavailableError("failed to update submission")
	}
	return nil
}

// ListByAssignment returns all submissions for an assignment, most recent
// first. The sort index is assumed available here; there is no unsorted
// fallback, unlike the sibling listings.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]models.Submission, error) {
	docs, err := r.submissions.Find(ctx, docstore.Query{}.
		Where("assignmentId", assignmentID).
		OrderByDesc("submittedAt"))
	if err != nil {
		r.logger.Error().Err(err).Str("assignmentId", assignmentID).Msg("Failed to fetch assignment submissions")
		return nil, apperrors.NewStoreUnavailableError("failed to fetch submissions")
	}
	return decodeSubmissions(docs)
}

// ListByStudent returns all of a student's submissions.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error) {
	docs, err := r.submissions.Find(ctx, docstore.Query{}.
		Where("studentId", studentID))
	if err != nil {
		r.logger.Error().Err(err).Str("studentId", studentID).Msg("Failed to fetch student submissions")
		return nil, apperrors.NewStoreUnavailableError("failed to fetch submissions")
	}
	return decodeSubmissions(docs)
}

func decodeSubmission(doc *docstore.Document) (*models.Submission, error) {
	var submission models.Submission
	if err := doc.DataTo(&submission); err != nil {
		return nil, err
	}
	submission.ID = doc.ID
	return &submission, nil
}

func decodeSubmissions(docs []docstore.Document) ([]models.Submission, error) {
	submissions := make([]models.Submission, 0, len(docs))
	for i := range docs {
		submission, err := decodeSubmission(&docs[i])
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *submission)
	}
	return submissions, nil
}
