package issueControllers

import (
	"time"

	"civicvoice/database"
	"civicvoice/middleware"
	"civicvoice/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// VotedIssue is an issue row decorated with its vote total, as served by the
// trending/best/worst dashboard sections.
type VotedIssue struct {
	ID           string               `json:"id"`
	Description  string               `json:"description"`
	IssueType    string               `json:"issueType"`
	Severity     models.IssueSeverity `json:"severity"`
	Status       models.IssueStatus   `json:"status"`
	LocationName *string              `json:"locationName"`
	CreatedAt    time.Time            `json:"createdAt"`
	VoteCount    int64                `json:"voteCount"`
}

const topN = 5

// GetAnalytics returns the aggregate payload behind the admin dashboards:
// status summary, category breakdown, 12-month resolution trend, the
// vote-ranked views, and the ignored-issue list.
func GetAnalytics(c *fiber.Ctx) error {
	db := database.Database.Db

	var total, resolved int64
	if err := db.Model(&models.Issue{}).Count(&total).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to get analytics")
	}
	if err := db.Model(&models.Issue{}).
		Where("status = ?", models.StatusResolved).
		Count(&resolved).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to get analytics")
	}

	resolutionRate := 0.0
	if total > 0 {
		resolutionRate = float64(resolved) / float64(total)
	}

	// Category breakdown
	var byCategory []struct {
		IssueType string `json:"issueType"`
		Count     int64  `json:"count"`
	}
	if err := db.Model(&models.Issue{}).
		Select("issue_type, COUNT(*) AS count").
		Group("issue_type").
		Order("count DESC").
		Scan(&byCategory).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to get analytics")
	}

	// Issues resolved per month over the last year
	type monthBucket struct {
		Month    string `json:"month"`
		Resolved int64  `json:"resolved"`
	}
	trend := make([]monthBucket, 0, 12)
	for i := 11; i >= 0; i-- {
		start := now.New(time.Now().AddDate(0, -i, 0)).BeginningOfMonth()
		end := start.AddDate(0, 1, 0)

		var count int64
		if err := db.Model(&models.Issue{}).
			Where("status = ? AND created_at >= ? AND created_at < ?",
				models.StatusResolved, start, end).
			Count(&count).Error; err != nil {
			return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to get analytics")
		}
		trend = append(trend, monthBucket{Month: start.Format("Jan 2006"), Resolved: count})
	}

	weekAgo := time.Now().Add(-staleAfter)

	trending, err := topVoted(db, topN, &weekAgo, nil, "issues.created_at DESC")
	if err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to get analytics")
	}

	resolvedOnly := "issues.status = 'RESOLVED'"
	bestWork, err := topVoted(db, topN, nil, &resolvedOnly, "issues.created_at DESC")
	if err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to get analytics")
	}

	// Worst work: unresolved, most voted, oldest first on ties.
	unresolvedOnly := "issues.status <> 'RESOLVED'"
	worstWork, err := topVoted(db, topN, nil, &unresolvedOnly, "issues.created_at ASC")
	if err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to get analytics")
	}

	// Ignored: unresolved and open for 7+ days, oldest first.
	var ignored []models.Issue
	if err := db.
		Where("status <> ? AND created_at <= ?", models.StatusResolved, weekAgo).
		Order("created_at ASC").
		Find(&ignored).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to get analytics")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"summary": fiber.Map{
			"total":          total,
			"open":           total - resolved,
			"resolved":       resolved,
			"resolutionRate": resolutionRate,
		},
		"byCategory":      byCategory,
		"resolutionTrend": trend,
		"trending":        trending,
		"bestWork":        bestWork,
		"worstWork":       worstWork,
		"ignored":         ignored,
	})
}

// topVoted ranks issues by vote count. voteSince restricts which votes are
// counted (nil counts all-time), cond restricts which issues qualify, and
// tieOrder breaks equal vote counts.
func topVoted(db *gorm.DB, limit int, voteSince *time.Time, cond *string, tieOrder string) ([]VotedIssue, error) {
	q := db.Model(&models.Issue{}).
		Select(`issues.id, issues.description, issues.issue_type, issues.severity,
			issues.status, issues.location_name, issues.created_at,
			COUNT(votes.id) AS vote_count`)

	if voteSince != nil {
		q = q.Joins("LEFT JOIN votes ON votes.issue_id = issues.id AND votes.created_at >= ?", *voteSince)
	} else {
		q = q.Joins("LEFT JOIN votes ON votes.issue_id = issues.id")
	}
	if cond != nil {
		q = q.Where(*cond)
	}

	rows := make([]VotedIssue, 0, limit)
	err := q.Group("issues.id").
		Order("vote_count DESC, " + tieOrder).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
