// Package progression holds the learner-progression rules: session
// completion evidence, badge naming, certificate eligibility and the
// champion -> saathi promotion state machine. Everything here is pure
// decision logic over plain values; controllers own all database access.
package progression

import (
	"fmt"
	"math"
	"time"

	"saathi/models"
)

// RequiredSessions is the fixed session count a course must have before any
// certificate for it can be issued. Completion and badge counts must reach
// the same number.
const RequiredSessions = 9

// MinWatchRatio is the fraction of a video a learner must watch for a
// completion to count.
const MinWatchRatio = 0.8

// Machine-readable business-rule codes surfaced to the client.
const (
	CodeVideoNotWatched       = "VIDEO_NOT_WATCHED"
	CodeMissingWatchDuration  = "MISSING_WATCH_DURATION"
	CodeNoVideoResource       = "NO_VIDEO_RESOURCE"
	CodeInsufficientWatch     = "INSUFFICIENT_WATCH_DURATION"
	CodeCertificateRequired   = "CERTIFICATE_REQUIRED"
	CodeSessionCountMismatch  = "COURSE_SESSION_COUNT_MISMATCH"
	CodeSessionsIncomplete    = "SESSIONS_INCOMPLETE"
	CodeBadgesIncomplete      = "BADGES_INCOMPLETE"
	CodeRequestNotPending     = "REQUEST_NOT_PENDING"
	CodeChampionRoleRequired  = "CHAMPION_ROLE_REQUIRED"
)

// CompletionIssue explains why a completion attempt was refused.
type CompletionIssue struct {
	Code              string `json:"code"`
	Message           string `json:"message"`
	WatchedSeconds    int    `json:"watched_seconds,omitempty"`
	ExpectedDuration  int    `json:"expected_duration,omitempty"`
	WatchedPercentage int    `json:"watched_percentage,omitempty"`
}

// WatchEvidence is the client-supplied proof that the session video was
// watched. WatchDuration is a pointer so an absent field is distinguishable
// from zero.
type WatchEvidence struct {
	VideoWatched  bool
	WatchDuration *int
	VideoID       string
}

// ValidateWatchEvidence applies the completion rules. hasVideo reports
// whether the session carries any video resource at all; expectedDuration is
// the recorded duration of the specific video the client named, or 0 when
// unknown. Returns nil when the completion may proceed.
func ValidateWatchEvidence(ev WatchEvidence, hasVideo bool, expectedDuration int) *CompletionIssue {
	if !ev.VideoWatched {
		return &CompletionIssue{
			Code:    CodeVideoNotWatched,
			Message: "You must watch the video to complete this session",
		}
	}

	if ev.WatchDuration == nil {
		return &CompletionIssue{
			Code:    CodeMissingWatchDuration,
			Message: "Video watch duration is required",
		}
	}

	if !hasVideo {
		return &CompletionIssue{
			Code:    CodeNoVideoResource,
			Message: "No video resources found for this session",
		}
	}

	if expectedDuration > 0 && float64(*ev.WatchDuration) < float64(expectedDuration)*MinWatchRatio {
		return &CompletionIssue{
			Code:              CodeInsufficientWatch,
			Message:           "You must watch at least 80% of the video to complete this session",
			WatchedSeconds:    *ev.WatchDuration,
			ExpectedDuration:  expectedDuration,
			WatchedPercentage: int(math.Round(float64(*ev.WatchDuration) / float64(expectedDuration) * 100)),
		}
	}

	return nil
}

// BadgeName derives the badge title for a completed session.
func BadgeName(sessionTitle string) string {
	return sessionTitle + " Completion Badge"
}

// CertificateID synthesizes a certificate id from the course and the issue
// instant: CERT-<6 hex chars>-<epoch millis>.
func CertificateID(courseID uint, at time.Time) string {
	return fmt.Sprintf("CERT-%06X-%d", courseID&0xFFFFFF, at.UnixMilli())
}

// Eligibility is the outcome of a certificate eligibility check. When not
// eligible, Code carries the first failed rule.
type Eligibility struct {
	Eligible         bool   `json:"eligible"`
	Code             string `json:"code,omitempty"`
	Message          string `json:"message"`
	SessionCount     int    `json:"session_count"`
	CompletedCount   int    `json:"completed_count"`
	BadgeCount       int    `json:"badge_count"`
	RequiredSessions int    `json:"required_sessions"`
}

// CheckEligibility decides certificate eligibility from the course's session
// count, the learner's completed-progress count over those sessions, and the
// learner's badge count tagged with the course.
func CheckEligibility(sessionCount, completedCount, badgeCount int) Eligibility {
	e := Eligibility{
		SessionCount:     sessionCount,
		CompletedCount:   completedCount,
		BadgeCount:       badgeCount,
		RequiredSessions: RequiredSessions,
	}

	if sessionCount != RequiredSessions {
		e.Code = CodeSessionCountMismatch
		e.Message = fmt.Sprintf("Course must have exactly %d sessions to issue certificates", RequiredSessions)
		return e
	}

	if completedCount < RequiredSessions {
		e.Code = CodeSessionsIncomplete
		e.Message = fmt.Sprintf("Must complete all %d sessions in this course to get a certificate", RequiredSessions)
		return e
	}

	if badgeCount < RequiredSessions {
		e.Code = CodeBadgesIncomplete
		e.Message = fmt.Sprintf("Must earn all %d badges for this course to get a certificate", RequiredSessions)
		return e
	}

	e.Eligible = true
	e.Message = "Eligible for certificate"
	return e
}

// Promotion request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PromotionIssue explains a refused promotion transition.
type PromotionIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (p *PromotionIssue) Error() string { return p.Message }

// NewPromotionRequest builds a pending champion -> saathi request. The caller
// persists it, overwriting any previous request for the learner.
func NewPromotionRequest(role models.Role, certificateCount int, reason string, at time.Time) (models.PromotionRequest, *PromotionIssue) {
	if role != models.RoleChampion {
		return models.PromotionRequest{}, &PromotionIssue{
			Code:    CodeChampionRoleRequired,
			Message: "Only champions can request promotion to saathi",
		}
	}

	if certificateCount == 0 {
		return models.PromotionRequest{}, &PromotionIssue{
			Code:    CodeCertificateRequired,
			Message: "You must earn a certificate before requesting promotion to saathi",
		}
	}

	return models.PromotionRequest{
		RequestedAt:   at,
		CurrentRole:   models.RoleChampion,
		RequestedRole: models.RoleSaathi,
		Reason:        reason,
		Status:        StatusPending,
	}, nil
}

// ApprovePromotion moves a pending request to approved. Role and certificate
// possession are re-validated at decision time. The caller must also set the
// learner's role to saathi when this succeeds.
func ApprovePromotion(req *models.PromotionRequest, role models.Role, certificateCount int, adminID uint, feedback string, at time.Time) *PromotionIssue {
	if req == nil || req.Status != StatusPending {
		return &PromotionIssue{
			Code:    CodeRequestNotPending,
			Message: "User does not have a pending promotion request",
		}
	}

	if role != models.RoleChampion {
		return &PromotionIssue{
			Code:    CodeChampionRoleRequired,
			Message: "Only champions can be promoted to saathi",
		}
	}

	if certificateCount == 0 {
		return &PromotionIssue{
			Code:    CodeCertificateRequired,
			Message: "User must have earned a certificate to be promoted to saathi",
		}
	}

	if feedback == "" {
		feedback = "Congratulations! Your request to become a Saathi has been approved."
	}

	req.Status = StatusApproved
	req.ProcessedAt = &at
	req.ProcessedBy = &adminID
	req.Feedback = feedback
	return nil
}

// RejectPromotion moves a pending request to rejected without touching the
// learner's role.
func RejectPromotion(req *models.PromotionRequest, adminID uint, feedback string, at time.Time) *PromotionIssue {
	if req == nil || req.Status != StatusPending {
		return &PromotionIssue{
			Code:    CodeRequestNotPending,
			Message: "User does not have a pending promotion request",
		}
	}

	if feedback == "" {
		feedback = "Your request to become a Saathi has been declined."
	}

	req.Status = StatusRejected
	req.ProcessedAt = &at
	req.ProcessedBy = &adminID
	req.Feedback = feedback
	return nil
}
