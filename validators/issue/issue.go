package issueValidators

import (
	"strings"

	"civicvoice/middleware"
	"civicvoice/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateIssueRequest is the validated multipart submission, handed to the
// controller via Locals. The image file itself is read by the controller.
type CreateIssueRequest struct {
	Description    string
	IssueType      string
	Severity       models.IssueSeverity
	Location       *string
	Coordinates    *string
	LocationName   *string
	ExternalUserID *string
}

type createIssuePayload struct {
	Description string `validate:"required"`
	IssueType   string `validate:"required"`
	Severity    string `validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
}

// optionalFormValue trims a form field and maps empty to nil.
func optionalFormValue(c *fiber.Ctx, key string) *string {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}

func CreateIssue() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := createIssuePayload{
			Description: strings.TrimSpace(c.FormValue("description")),
			IssueType:   strings.TrimSpace(c.FormValue("issueType")),
			Severity:    strings.ToUpper(strings.TrimSpace(c.FormValue("severity"))),
		}

		if err := validate.Struct(payload); err != nil {
			return middleware.JsonError(c, fiber.StatusBadRequest,
				"description, issueType, and valid severity are required")
		}

		severity, ok := models.ParseSeverity(payload.Severity)
		if !ok {
			return middleware.JsonError(c, fiber.StatusBadRequest,
				"description, issueType, and valid severity are required")
		}

		c.Locals("validatedCreateIssue", &CreateIssueRequest{
			Description:    payload.Description,
			IssueType:      payload.IssueType,
			Severity:       severity,
			Location:       optionalFormValue(c, "location"),
			Coordinates:    optionalFormValue(c, "coordinates"),
			LocationName:   optionalFormValue(c, "locationName"),
			ExternalUserID: optionalFormValue(c, "userId"),
		})
		return c.Next()
	}
}

// ListIssuesRequest is the validated query for the filtered issue list.
type ListIssuesRequest struct {
	Status    *models.IssueStatus
	Severity  *models.IssueSeverity
	IssueType *string
	Search    *string
	Area      *string
	Queue     *string
	Page      int
	Limit     int
}

func ListIssues(defaultLimit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := &ListIssuesRequest{Page: 1, Limit: defaultLimit}

		if v := strings.TrimSpace(c.Query("status")); v != "" {
			status, ok := models.ParseStatus(v)
			if !ok {
				return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid status filter")
			}
			req.Status = &status
		}
		if v := strings.TrimSpace(c.Query("severity")); v != "" {
			severity, ok := models.ParseSeverity(v)
			if !ok {
				return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid severity filter")
			}
			req.Severity = &severity
		}
		if v := strings.TrimSpace(c.Query("issueType")); v != "" {
			req.IssueType = &v
		}
		if v := strings.TrimSpace(c.Query("q")); v != "" {
			req.Search = &v
		}
		if v := strings.TrimSpace(c.Query("area")); v != "" {
			req.Area = &v
		}
		if v := strings.ToLower(strings.TrimSpace(c.Query("queue"))); v != "" {
			switch v {
			case "unassigned", "critical", "stale":
				req.Queue = &v
			default:
				return middleware.JsonError(c, fiber.StatusBadRequest,
					"Invalid queue! Must be one of: unassigned, critical, stale.")
			}
		}

		if page := c.QueryInt("page", 1); page >= 1 {
			req.Page = page
		}
		if limit := c.QueryInt("limit", defaultLimit); limit >= 1 && limit <= 100 {
			req.Limit = limit
		}

		c.Locals("validatedListIssues", req)
		return c.Next()
	}
}

// UpdateStatusRequest carries the normalized target status.
type UpdateStatusRequest struct {
	Status models.IssueStatus
}

func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid status")
		}

		// Status is uppercased before the membership check, so "resolved"
		// and "RESOLVED" are both accepted.
		status, ok := models.ParseStatus(body.Status)
		if !ok {
			return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid status")
		}

		c.Locals("validatedUpdateStatus", &UpdateStatusRequest{Status: status})
		return c.Next()
	}
}

// AssignRequest carries the assignee; empty or whitespace-only means unassign.
type AssignRequest struct {
	AssignedTo *string
}

func AssignIssue() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			AssignedTo *string `json:"assignedTo"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.JsonError(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		req := &AssignRequest{}
		if body.AssignedTo != nil {
			trimmed := strings.TrimSpace(*body.AssignedTo)
			if trimmed != "" {
				req.AssignedTo = &trimmed
			}
		}

		c.Locals("validatedAssign", req)
		return c.Next()
	}
}
