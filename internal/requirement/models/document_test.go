package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nachweis/internal/catalog"
	"nachweis/internal/validity"
	id "nachweis/pkg/domain"
	dErrors "nachweis/pkg/domain-errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestDocument(typeID catalog.DocumentTypeID, now time.Time) *Document {
	return NewDocument(id.NewContractorID(), typeID, "Haftpflichtversicherung", RequirementRequired, now)
}

func TestNewDocument(t *testing.T) {
	now := day(2024, time.January, 10)
	doc := newTestDocument(catalog.TypeHaftpflicht, now)

	assert.False(t, doc.ID.IsZero())
	assert.Equal(t, StatusMissing, doc.Status)
	assert.Equal(t, RequirementRequired, doc.Requirement)
	assert.Equal(t, validity.SourceNone, doc.ValiditySource)
	assert.Nil(t, doc.ValidUntil)
	assert.Equal(t, now, doc.CreatedAt)
}

func TestUploadLifecycle(t *testing.T) {
	now := day(2024, time.January, 10)
	doc := newTestDocument(catalog.TypeHaftpflicht, now)

	require.NoError(t, doc.Upload("haftpflicht-2024.pdf", now))
	assert.Equal(t, StatusSubmitted, doc.Status)
	assert.Equal(t, "haftpflicht-2024.pdf", doc.FileName)
	require.NotNil(t, doc.UploadedAt)
	assert.Equal(t, now, *doc.UploadedAt)

	// A second upload while already submitted is not allowed.
	err := doc.Upload("haftpflicht-2024-v2.pdf", now.Add(time.Hour))
	assert.Equal(t, dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
	assert.Equal(t, "haftpflicht-2024.pdf", doc.FileName)
}

func TestReviewAccept(t *testing.T) {
	now := day(2024, time.January, 31)
	doc := newTestDocument(catalog.TypeHaftpflicht, now)
	require.NoError(t, doc.Upload("policy.pdf", now))
	require.NoError(t, doc.Accept(now, nil))

	assert.Equal(t, StatusValid, doc.Status)
	assert.Equal(t, validity.SourceAuto, doc.ValiditySource)
	require.NotNil(t, doc.ValidUntil)
	assert.Equal(t, day(2025, time.January, 31), doc.ValidUntil.UTC())
	require.NotNil(t, doc.AcceptedAt)
	assert.Equal(t, now, *doc.AcceptedAt)
}

func TestReviewAcceptWithDeclaredExpiry(t *testing.T) {
	now := day(2024, time.January, 31)
	declared := day(2024, time.April, 1)
	doc := newTestDocument(catalog.TypeGewerbeanmeldung, now)
	require.NoError(t, doc.Upload("gewerbe.pdf", now))
	require.NoError(t, doc.Accept(now, &declared))

	assert.Equal(t, validity.SourceUser, doc.ValiditySource)
	require.NotNil(t, doc.ValidUntil)
	assert.Equal(t, declared, doc.ValidUntil.UTC())
}

func TestReviewAcceptAfterStartReview(t *testing.T) {
	now := day(2024, time.January, 10)
	doc := newTestDocument(catalog.TypeUnbedenklichkeit, now)
	require.NoError(t, doc.Upload("unbedenklich.pdf", now))

	require.NoError(t, doc.CanStartReview())
	doc.ApplyStartReview(now)
	assert.Equal(t, StatusInReview, doc.Status)

	require.NoError(t, doc.Accept(now, nil))
	assert.Equal(t, StatusValid, doc.Status)
}

func TestRejectAndResubmit(t *testing.T) {
	now := day(2024, time.January, 10)
	doc := newTestDocument(catalog.TypeHaftpflicht, now)
	require.NoError(t, doc.Upload("blurry-scan.pdf", now))
	require.NoError(t, doc.Reject("scan is unreadable", now))

	assert.Equal(t, StatusRejected, doc.Status)
	assert.Equal(t, "scan is unreadable", doc.RejectionReason)

	// Re-upload supersedes the rejection and clears the reason.
	later := now.Add(24 * time.Hour)
	require.NoError(t, doc.Upload("clean-scan.pdf", later))
	assert.Equal(t, StatusSubmitted, doc.Status)
	assert.Empty(t, doc.RejectionReason)
	assert.Equal(t, "clean-scan.pdf", doc.FileName)
}

func TestRejectRequiresReason(t *testing.T) {
	now := day(2024, time.January, 10)
	doc := newTestDocument(catalog.TypeHaftpflicht, now)
	require.NoError(t, doc.Upload("scan.pdf", now))

	err := doc.Reject("", now)
	assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	assert.Equal(t, StatusSubmitted, doc.Status)
}

func TestReviewGuards(t *testing.T) {
	now := day(2024, time.January, 10)

	t.Run("missing document cannot be reviewed", func(t *testing.T) {
		doc := newTestDocument(catalog.TypeHaftpflicht, now)
		err := doc.Accept(now, nil)
		assert.Equal(t, dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
	})

	t.Run("rejected document cannot be re-reviewed", func(t *testing.T) {
		doc := newTestDocument(catalog.TypeHaftpflicht, now)
		require.NoError(t, doc.Upload("scan.pdf", now))
		require.NoError(t, doc.Reject("wrong document", now))
		err := doc.Accept(now, nil)
		assert.Equal(t, dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
	})
}

func TestEvaluateAgainstClock(t *testing.T) {
	accepted := day(2024, time.January, 31)

	acceptedDoc := func(t *testing.T) *Document {
		t.Helper()
		doc := newTestDocument(catalog.TypeHaftpflicht, accepted)
		require.NoError(t, doc.Upload("policy.pdf", accepted))
		require.NoError(t, doc.Accept(accepted, nil)) // valid until 2025-01-31
		return doc
	}

	t.Run("far from expiry stays valid", func(t *testing.T) {
		doc := acceptedDoc(t)
		assert.False(t, doc.EvaluateAgainstClock(day(2024, time.June, 1), validity.DefaultLookaheadDays))
		assert.Equal(t, StatusValid, doc.Status)
	})

	t.Run("inside lookahead becomes expiring", func(t *testing.T) {
		doc := acceptedDoc(t)
		assert.True(t, doc.EvaluateAgainstClock(day(2025, time.January, 15), validity.DefaultLookaheadDays))
		assert.Equal(t, StatusExpiring, doc.Status)
	})

	t.Run("past expiry becomes expired from valid or expiring", func(t *testing.T) {
		doc := acceptedDoc(t)
		assert.True(t, doc.EvaluateAgainstClock(day(2025, time.January, 15), validity.DefaultLookaheadDays))
		assert.True(t, doc.EvaluateAgainstClock(day(2025, time.February, 1), validity.DefaultLookaheadDays))
		assert.Equal(t, StatusExpired, doc.Status)
	})

	t.Run("expired evaluation is idempotent", func(t *testing.T) {
		doc := acceptedDoc(t)
		require.True(t, doc.EvaluateAgainstClock(day(2025, time.February, 1), validity.DefaultLookaheadDays))
		assert.False(t, doc.EvaluateAgainstClock(day(2025, time.March, 1), validity.DefaultLookaheadDays))
		assert.Equal(t, StatusExpired, doc.Status)
	})

	t.Run("non time driven statuses are untouched", func(t *testing.T) {
		doc := newTestDocument(catalog.TypeHaftpflicht, accepted)
		assert.False(t, doc.EvaluateAgainstClock(day(2030, time.January, 1), validity.DefaultLookaheadDays))
		assert.Equal(t, StatusMissing, doc.Status)
	})
}

func TestMarkOptionalAndRequired(t *testing.T) {
	now := day(2024, time.January, 10)
	doc := newTestDocument(catalog.TypeSokaBau, now)

	assert.False(t, doc.MarkRequired(now))
	assert.True(t, doc.MarkOptional(now))
	assert.Equal(t, RequirementOptional, doc.Requirement)
	assert.False(t, doc.MarkOptional(now))
	assert.True(t, doc.MarkRequired(now))
	assert.Equal(t, RequirementRequired, doc.Requirement)
}

func TestClone(t *testing.T) {
	now := day(2024, time.January, 31)
	doc := newTestDocument(catalog.TypeHaftpflicht, now)
	require.NoError(t, doc.Upload("policy.pdf", now))
	require.NoError(t, doc.Accept(now, nil))

	clone := doc.Clone()
	require.NotNil(t, clone.ValidUntil)
	*clone.ValidUntil = day(1999, time.January, 1)
	clone.Status = StatusExpired

	assert.Equal(t, StatusValid, doc.Status)
	assert.Equal(t, day(2025, time.January, 31), doc.ValidUntil.UTC())
}
