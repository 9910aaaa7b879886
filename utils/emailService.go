package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"saathi/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Saathi Shiksha <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B5E20; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #212121; line-height: 1.6; }
			.content h2 { color: #1B5E20; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F5E9; padding: 15px; border-radius: 4px; border-left: 4px solid #66BB6A; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>SAATHI SHIKSHA</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Saathi Shiksha Foundation. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Saathi Shiksha"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Saathi Shiksha</strong>! Your account has been created.</p>
		<p>You can now browse courses in your language, complete sessions and earn badges and certificates.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Certificate Issued
func SendCertificateEmail(email, name, courseTitle, certificateID string) {
	subject := "Certificate Issued: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong> and earned a certificate.</p>
		<div class="info-box">
			<strong>Certificate ID:</strong> %s
		</div>
		<p>Keep learning. Your certificates count towards the Saathi promotion.</p>
	`, name, courseTitle, certificateID)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate Issued", body))
}

// 3. Promotion Decision
func SendPromotionDecisionEmail(email, name, status, feedback string) {
	subject := "Your Saathi Promotion Request"
	title := "Promotion Request Update"
	if status == "approved" {
		title = "You Are Now a Saathi!"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your request to become a Saathi has been <strong>%s</strong>.</p>
		<div class="info-box">%s</div>
	`, name, status, feedback)

	go SendEmail([]string{email}, subject, getEmailTemplate(title, body))
}

// 4. Grievance Response
func SendGrievanceResponseEmail(email, name, subjectLine, response string) {
	subject := "Response to Your Grievance: " + subjectLine
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An administrator has responded to your grievance <strong>%s</strong>.</p>
		<div class="info-box">%s</div>
	`, name, subjectLine, response)

	go SendEmail([]string{email}, subject, getEmailTemplate("Grievance Update", body))
}
