package issueControllers

import (
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"civicvoice/database"
	"civicvoice/middleware"
	"civicvoice/models"
	"civicvoice/utils"
	issueValidators "civicvoice/validators/issue"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// staleAfter is how long an unresolved issue can sit before it counts as
// ignored.
const staleAfter = 7 * 24 * time.Hour

// UploadImage is swappable so handler tests never talk to Cloudinary.
var UploadImage = utils.UploadImage

// CreateIssue persists a new complaint. The image (when present) is uploaded
// to the asset host first; if that fails the submission aborts and no row is
// written.
func CreateIssue(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateIssue").(*issueValidators.CreateIssueRequest)
	if !ok {
		return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	var imageURL *string
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to read image")
		}
		fileBytes, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to read image")
		}

		url, err := UploadImage(fileBytes, fileHeader.Filename)
		if err != nil {
			log.Printf("Image upload failed: %v", err)
			return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to upload image")
		}
		imageURL = &url
	}

	// Resolve the local user from the external identity id. Absence does not
	// block submission; the issue is stored without an owner.
	var userID *uint
	if reqData.ExternalUserID != nil {
		var user models.User
		err := database.Database.Db.
			Where("external_id = ?", *reqData.ExternalUserID).
			First(&user).Error
		if err == nil {
			userID = &user.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to create issue")
		}
	}

	issue := models.Issue{
		Description:  reqData.Description,
		IssueType:    reqData.IssueType,
		Severity:     reqData.Severity,
		Status:       models.StatusSubmitted,
		Location:     reqData.Location,
		Coordinates:  reqData.Coordinates,
		LocationName: reqData.LocationName,
		ImageURL:     imageURL,
		UserID:       userID,
	}

	if err := database.Database.Db.Create(&issue).Error; err != nil {
		log.Printf("Failed to create issue: %v", err)
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to create issue")
	}

	return c.JSON(fiber.Map{"success": true, "issue": issue})
}

// ListIssues returns issues ordered newest-first with optional filters,
// free-text search, queue shortcuts, and pagination.
func ListIssues(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedListIssues").(*issueValidators.ListIssuesRequest)
	if !ok {
		return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid request!")
	}

	db := database.Database.Db.Model(&models.Issue{}).
		Joins("LEFT JOIN users ON users.id = issues.user_id")

	if reqData.Status != nil {
		db = db.Where("issues.status = ?", *reqData.Status)
	}
	if reqData.Severity != nil {
		db = db.Where("issues.severity = ?", *reqData.Severity)
	}
	if reqData.IssueType != nil {
		db = db.Where("LOWER(issues.issue_type) = ?", strings.ToLower(*reqData.IssueType))
	}
	if reqData.Area != nil {
		db = db.Where("LOWER(issues.location_name) LIKE ?", "%"+strings.ToLower(*reqData.Area)+"%")
	}
	if reqData.Search != nil {
		like := "%" + strings.ToLower(*reqData.Search) + "%"
		db = db.Where(`LOWER(issues.description) LIKE ?
			OR LOWER(issues.location) LIKE ?
			OR LOWER(issues.location_name) LIKE ?
			OR LOWER(issues.coordinates) LIKE ?
			OR LOWER(issues.id) LIKE ?
			OR LOWER(users.email) LIKE ?
			OR LOWER(users.first_name) LIKE ?
			OR LOWER(users.last_name) LIKE ?`,
			like, like, like, like, like, like, like, like)
	}
	if reqData.Queue != nil {
		switch *reqData.Queue {
		case "unassigned":
			db = db.Where("issues.assigned_to IS NULL OR issues.assigned_to = ''")
		case "critical":
			db = db.Where("issues.severity = ?", models.SeverityCritical)
		case "stale":
			db = db.Where("issues.status <> ? AND issues.created_at <= ?",
				models.StatusResolved, time.Now().Add(-staleAfter))
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch issues")
	}

	offset := (reqData.Page - 1) * reqData.Limit

	var issues []models.Issue
	if err := db.Preload("User").
		Order("issues.created_at DESC").
		Offset(offset).Limit(reqData.Limit).
		Find(&issues).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch issues")
	}

	voteCounts, err := countVotes(issues)
	if err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch issues")
	}

	type issueWithVotes struct {
		models.Issue
		VoteCount int64 `json:"voteCount"`
	}
	withVotes := make([]issueWithVotes, 0, len(issues))
	for _, issue := range issues {
		withVotes = append(withVotes, issueWithVotes{Issue: issue, VoteCount: voteCounts[issue.ID]})
	}

	totalPages := (total + int64(reqData.Limit) - 1) / int64(reqData.Limit)
	if totalPages < 1 {
		totalPages = 1
	}

	return c.JSON(fiber.Map{
		"success": true,
		"issues":  withVotes,
		"pagination": fiber.Map{
			"page":       reqData.Page,
			"limit":      reqData.Limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// countVotes returns vote totals for the given issues in one grouped query.
func countVotes(issues []models.Issue) (map[string]int64, error) {
	counts := make(map[string]int64, len(issues))
	if len(issues) == 0 {
		return counts, nil
	}

	ids := make([]string, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, issue.ID)
	}

	var rows []struct {
		IssueID string
		Count   int64
	}
	err := database.Database.Db.Model(&models.Vote{}).
		Select("issue_id, COUNT(*) AS count").
		Where("issue_id IN ?", ids).
		Group("issue_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.IssueID] = row.Count
	}
	return counts, nil
}

// GetIssue returns a single issue with its vote count.
func GetIssue(c *fiber.Ctx) error {
	id := c.Params("id")

	var issue models.Issue
	err := database.Database.Db.Preload("User").Where("id = ?", id).First(&issue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonError(c, fiber.StatusNotFound, "Issue not found")
		}
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch issue")
	}

	var voteCount int64
	if err := database.Database.Db.Model(&models.Vote{}).
		Where("issue_id = ?", issue.ID).
		Count(&voteCount).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch issue")
	}

	return c.JSON(fiber.Map{"success": true, "issue": issue, "voteCount": voteCount})
}

// UpdateStatus moves an issue through its lifecycle. Admin only; the status
// was already normalized and validated by the request validator.
func UpdateStatus(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUpdateStatus").(*issueValidators.UpdateStatusRequest)
	if !ok {
		return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid status")
	}

	var issue models.Issue
	err := database.Database.Db.Where("id = ?", c.Params("id")).First(&issue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonError(c, fiber.StatusNotFound, "Issue not found")
		}
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to update status")
	}

	if err := database.Database.Db.Model(&issue).Update("status", reqData.Status).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to update status")
	}
	issue.Status = reqData.Status

	if reqData.Status == models.StatusResolved {
		notifyReporterResolved(issue)
	}

	return c.JSON(fiber.Map{"success": true, "issue": issue})
}

// notifyReporterResolved sends a courtesy mail to the issue owner. Best
// effort: failures are logged and never fail the request.
func notifyReporterResolved(issue models.Issue) {
	if issue.UserID == nil {
		return
	}

	var user models.User
	if err := database.Database.Db.First(&user, *issue.UserID).Error; err != nil || user.Email == "" {
		return
	}

	name := ""
	if user.FirstName != nil {
		name = *user.FirstName
	}
	if err := utils.SendIssueResolvedEmail(user.Email, name, issue); err != nil {
		log.Printf("Failed to send resolution email for issue %s: %v", issue.ID, err)
	}
}

// AssignIssue sets or clears the free-text assignee. Does not touch status.
func AssignIssue(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssign").(*issueValidators.AssignRequest)
	if !ok {
		return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	var issue models.Issue
	err := database.Database.Db.Where("id = ?", c.Params("id")).First(&issue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonError(c, fiber.StatusNotFound, "Issue not found")
		}
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to update assignee")
	}

	if err := database.Database.Db.Model(&issue).
		Update("assigned_to", reqData.AssignedTo).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to update assignee")
	}
	issue.AssignedTo = reqData.AssignedTo

	return c.JSON(fiber.Map{"success": true, "issue": issue})
}

// VoteIssue appends one vote and returns the fresh total. There is no
// server-side duplicate-vote prevention; the repeat-vote guard lives in the
// client and is advisory only.
func VoteIssue(c *fiber.Ctx) error {
	id := c.Params("id")

	var issue models.Issue
	err := database.Database.Db.Select("id").Where("id = ?", id).First(&issue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonError(c, fiber.StatusNotFound, "Issue not found")
		}
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to vote on issue")
	}

	if err := database.Database.Db.Create(&models.Vote{IssueID: issue.ID}).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to vote on issue")
	}

	var voteCount int64
	if err := database.Database.Db.Model(&models.Vote{}).
		Where("issue_id = ?", issue.ID).
		Count(&voteCount).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to vote on issue")
	}

	return c.JSON(fiber.Map{"success": true, "voteCount": voteCount})
}
