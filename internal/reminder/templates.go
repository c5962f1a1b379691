package reminder

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/julianstephens/workform/internal/models"
)

const absentWarning = "Otherwise, your attendance will be marked as absent in Razorpay."

var md = goldmark.New()

// Subject returns the email subject for a reminder type.
func Subject(t models.ReminderType) string {
	if t == models.ReminderFinal {
		return "Action Required: Task Submission - Attendance Marking"
	}
	return "Reminder: Please Submit Your Daily Tasks"
}

// ChatText is the message posted to the chat channel. The @name mention is
// resolved by the channel's email integration.
func ChatText(t models.ReminderType, name string) string {
	if t == models.ReminderFinal {
		return fmt.Sprintf("@%s Please add your task immediately. %s", name, absentWarning)
	}
	return fmt.Sprintf("@%s Please add your task. %s", name, absentWarning)
}

// ChatSubject is the subject of the mail sent to the chat relay mailbox.
func ChatSubject(name string) string {
	return "Task Reminder: " + name
}

func markdownBody(t models.ReminderType, name, link, signature string) string {
	var heading, lead, ask string
	switch t {
	case models.ReminderFinal:
		heading = "Task Submission Required"
		lead = "This is a final reminder that your daily task submission is pending for today. " +
			"**Your attendance will be marked as absent in Razorpay** if you do not submit your tasks immediately."
		ask = "Please add your task immediately. " + absentWarning
	case models.ReminderSecond:
		heading = "Reminder: Task Submission Pending"
		lead = "This is a reminder that your daily task submission is still pending for today."
		ask = "Please add your task. " + absentWarning
	default:
		heading = "Reminder: Task Submission Required"
		lead = "This is a reminder that your daily task submission is pending for today."
		ask = "Please add your task. " + absentWarning
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "## %s\n\nDear %s,\n\n%s\n\n> **%s**\n\n", heading, name, lead, ask)
	if link != "" {
		fmt.Fprintf(&b, "[Submit your tasks](%s)\n\n", link)
	}
	fmt.Fprintf(&b, "Best regards,  \n%s\n", signature)
	return b.String()
}

// RenderEmail returns the HTML body of a reminder email. Raw HTML in name is
// dropped by the renderer rather than passed through.
func RenderEmail(t models.ReminderType, name, link, signature string) (string, error) {
	var out bytes.Buffer
	out.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">` + "\n")
	if err := md.Convert([]byte(markdownBody(t, name, link, signature)), &out); err != nil {
		return "", fmt.Errorf("rendering reminder: %w", err)
	}
	out.WriteString("</div>\n")
	return out.String(), nil
}
