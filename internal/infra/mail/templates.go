package mail

// Email bodies are embedded so the binary has no runtime template-file
// dependency. Content mirrors what agents send from the lead detail page.

const approvalTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Hello {{.Name}},</h2>
  <p>{{.Headline}}</p>
  <p>{{.Body}}</p>
  <p>If you have any questions, simply reply to this email or wait for our call.</p>
  <p>Warm regards,<br>Team JustTry CRM</p>
</body>
</html>`

const customTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #222;">
{{.Body}}
<p>Warm regards,<br>Team JustTry CRM</p>
</body>
</html>`

type statusEmailData struct {
	Name     string
	Headline string
	Body     string
}

type customEmailData struct {
	Body string
}

// statusContent returns subject, headline and body for an approval email.
func statusContent(serviceType, status string) (string, string, string) {
	switch serviceType {
	case "Loan":
		if status == "Approved" {
			return "Your loan has been approved! 🎉",
				"Great news! Your loan application has been approved.",
				"Our back-office team will reach out with the disbursement details shortly. Please keep your bank details up to date so the transfer goes through smoothly."
		}
	case "Investment":
		if status == "Activated" {
			return "Your investment account is now active",
				"Excellent news! Your investment account has been successfully activated.",
				"You can now track your portfolio and returns. Your advisor will contact you to walk through the investment plan."
		}
	case "Insurance":
		if status == "Policy Issued" {
			return "Your insurance policy has been issued",
				"Wonderful news! Your insurance policy has been issued and is now active.",
				"Your policy documents are on their way. Reach out any time to discuss coverage, premiums, or the claim process."
		}
	}
	return "Update on your " + serviceType + " application",
		"There is an update on your application.",
		"Status: " + status + ". Please contact your agent for details."
}
