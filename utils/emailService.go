package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"civicvoice/config"
	"civicvoice/models"
)

// SendEmail delivers an HTML mail through the configured SMTP account.
// Returns nil without sending when no sender is configured.
func SendEmail(to []string, subject string, htmlBody string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword
	if from == "" {
		return nil
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Civic Voice <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1D4ED8; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #18181B; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1D4ED8; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Civic Voice</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">You are receiving this because of activity on Civic Voice.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendIssueResolvedEmail tells a reporter their complaint was resolved.
func SendIssueResolvedEmail(email, firstName string, issue models.Issue) error {
	greeting := "Hello,"
	if firstName != "" {
		greeting = fmt.Sprintf("Hello %s,", firstName)
	}

	body := fmt.Sprintf(`
		<p>%s</p>
		<p>Good news &mdash; the issue you reported has been marked <b>resolved</b>.</p>
		<div class="info-box">
			<p><b>Category:</b> %s</p>
			<p><b>Description:</b> %s</p>
			<p><b>Reported:</b> %s</p>
		</div>
		<p>Thank you for helping improve your neighborhood.</p>`,
		greeting, issue.IssueType, issue.Description, issue.CreatedAt.Format("Jan 2, 2006"))

	return SendEmail([]string{email}, "Your reported issue was resolved", getEmailTemplate("Issue resolved", body))
}

// SendStaleDigestEmail mails admins the list of issues open for 7+ days.
func SendStaleDigestEmail(to []string, issues []models.Issue) error {
	if len(to) == 0 || len(issues) == 0 {
		return nil
	}

	var rows strings.Builder
	for i, issue := range issues {
		if i >= 10 {
			rows.WriteString(fmt.Sprintf("<p>&hellip; and %d more.</p>", len(issues)-i))
			break
		}
		area := ""
		if issue.LocationName != nil {
			area = " &mdash; " + *issue.LocationName
		}
		rows.WriteString(fmt.Sprintf(
			"<p><b>[%s]</b> %s%s (since %s)</p>",
			issue.Severity, issue.Description, area, issue.CreatedAt.Format("Jan 2")))
	}

	body := fmt.Sprintf(`
		<p>%d issue(s) have been open for more than 7 days without resolution:</p>
		<div class="info-box">%s</div>
		<p>Review them in the admin dashboard.</p>`, len(issues), rows.String())

	return SendEmail(to, fmt.Sprintf("%d ignored issues need attention", len(issues)),
		getEmailTemplate("Ignored issues digest", body))
}
