package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"

	"contactform/internal/domain"
)

// escapeHTML escapes the five reserved characters (& < > " ') so
// user-supplied text can be interpolated into an HTML body. Plain-text
// renderings are never escaped.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}

// nl2br converts message newlines to line breaks, for the HTML rendering
// only. Input must already be escaped.
func nl2br(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// displayTime renders an RFC 3339 timestamp in the display form used in the
// business notification. Falls back to the raw value if it does not parse.
func displayTime(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return t.Format("January 2, 2006 at 3:04 PM")
}

type detailRow struct {
	Label string
	Value string
}

// presentDetails lists the optional trip fields the submitter actually
// filled in, in display order.
func presentDetails(sub *domain.Submission) []detailRow {
	var rows []detailRow
	if sub.Destination != domain.NoValue {
		rows = append(rows, detailRow{"Destination", sub.Destination})
	}
	if dates := dateRange(sub); dates != "" {
		rows = append(rows, detailRow{"Travel dates", dates})
	}
	if sub.Travelers != domain.NoValue {
		rows = append(rows, detailRow{"Travelers", sub.Travelers})
	}
	if sub.Phone != domain.NoValue {
		rows = append(rows, detailRow{"Phone", sub.Phone})
	}
	return rows
}

func dateRange(sub *domain.Submission) string {
	start, end := sub.TravelDateStart, sub.TravelDateEnd
	switch {
	case start != domain.NoValue && end != domain.NoValue:
		return fmt.Sprintf("%s to %s", start, end)
	case start != domain.NoValue:
		return fmt.Sprintf("from %s", start)
	case end != domain.NoValue:
		return fmt.Sprintf("until %s", end)
	}
	return ""
}

func customerSubject(businessName string) string {
	return fmt.Sprintf("We received your inquiry — %s", businessName)
}

func renderCustomerHTML(sub *domain.Submission, businessName string) string {
	var details strings.Builder
	for _, row := range presentDetails(sub) {
		fmt.Fprintf(&details, `<p style="margin: 4px 0;"><strong>%s:</strong> %s</p>`+"\n",
			row.Label, escapeHTML(row.Value))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>We received your inquiry</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #1C5D99;">Thank you for your inquiry, %s!</h2>
        <p>We received your message and one of our travel specialists will get back to you within 24 hours.</p>

        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
%s        </div>

        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #1C5D99; border-radius: 4px; margin: 20px 0;">
            <h3 style="color: #0D1A2D; margin-top: 0;">Your message:</h3>
            <p>%s</p>
        </div>

        <p>Your reference number is <strong>%s</strong>. Please mention it in any follow-up.</p>

        <p style="color: #64748B; font-size: 14px;">
            Best regards,<br>
            The %s Team
        </p>
    </div>
</body>
</html>`,
		escapeHTML(sub.Name),
		details.String(),
		nl2br(escapeHTML(sub.Message)),
		escapeHTML(sub.ID),
		escapeHTML(businessName))
}

func renderCustomerText(sub *domain.Submission, businessName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your inquiry, %s!\n\n", sub.Name)
	b.WriteString("We received your message and one of our travel specialists will get back to you within 24 hours.\n\n")
	for _, row := range presentDetails(sub) {
		fmt.Fprintf(&b, "%s: %s\n", row.Label, row.Value)
	}
	fmt.Fprintf(&b, "\nYour message:\n%s\n\n", sub.Message)
	fmt.Fprintf(&b, "Your reference number is %s. Please mention it in any follow-up.\n\n", sub.ID)
	fmt.Fprintf(&b, "Best regards,\nThe %s Team\n", businessName)
	return b.String()
}

func businessSubject(sub *domain.Submission) string {
	return fmt.Sprintf("New Travel Inquiry from %s", sub.Name)
}

func renderBusinessHTML(sub *domain.Submission) string {
	rowStyle := `style="padding: 8px 12px; border-bottom: 1px solid #E2E8F0;"`
	row := func(label, value string) string {
		return fmt.Sprintf("            <tr><td %s><strong>%s</strong></td><td %s>%s</td></tr>\n",
			rowStyle, label, rowStyle, value)
	}

	var rows strings.Builder
	rows.WriteString(row("Name", escapeHTML(sub.Name)))
	rows.WriteString(row("Email", fmt.Sprintf(`<a href="mailto:%s">%s</a>`, escapeHTML(sub.Email), escapeHTML(sub.Email))))
	if sub.Phone != domain.NoValue {
		rows.WriteString(row("Phone", fmt.Sprintf(`<a href="tel:%s">%s</a>`, escapeHTML(sub.Phone), escapeHTML(sub.Phone))))
	} else {
		rows.WriteString(row("Phone", escapeHTML(sub.Phone)))
	}
	rows.WriteString(row("Destination", escapeHTML(sub.Destination)))
	rows.WriteString(row("Travel dates", escapeHTML(fmt.Sprintf("%s to %s", sub.TravelDateStart, sub.TravelDateEnd))))
	rows.WriteString(row("Travelers", escapeHTML(sub.Travelers)))
	rows.WriteString(row("Submitted", escapeHTML(displayTime(sub.SubmittedAt))))

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Travel Inquiry</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #1C5D99;">New Travel Inquiry</h2>

        <table style="width: 100%%; border-collapse: collapse; background: #F8FAFC; border-radius: 8px; margin: 20px 0;">
%s        </table>

        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #1C5D99; border-radius: 4px; margin: 20px 0;">
            <h3 style="color: #0D1A2D; margin-top: 0;">Message:</h3>
            <p>%s</p>
        </div>

        <p style="color: #64748B; font-size: 14px;">Reference: %s</p>
    </div>
</body>
</html>`,
		rows.String(),
		nl2br(escapeHTML(sub.Message)),
		escapeHTML(sub.ID))
}

func renderBusinessText(sub *domain.Submission) string {
	var b strings.Builder
	b.WriteString("New Travel Inquiry\n\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	fmt.Fprintf(&b, "Phone: %s\n", sub.Phone)
	fmt.Fprintf(&b, "Destination: %s\n", sub.Destination)
	fmt.Fprintf(&b, "Travel dates: %s to %s\n", sub.TravelDateStart, sub.TravelDateEnd)
	fmt.Fprintf(&b, "Travelers: %s\n", sub.Travelers)
	fmt.Fprintf(&b, "Submitted: %s\n\n", displayTime(sub.SubmittedAt))
	fmt.Fprintf(&b, "Message:\n%s\n\n", sub.Message)
	fmt.Fprintf(&b, "Reference: %s\n", sub.ID)
	return b.String()
}
