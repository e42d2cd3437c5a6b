package notify

import (
	"fmt"
	"net/smtp"

	"github.com/habrasia/yogyn/internal/event"
)

const timeLayout = "Mon, Jan 2 2006 at 3:04 PM"

// Sender delivers one composed email over SMTP.
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	from     string
	fromName string
	host     string
	port     string
	user     string
	pass     string
}

func NewSMTPSender(from, fromName, host, port, user, pass string) Sender {
	return &smtpSender{
		from:     from,
		fromName: fromName,
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
	}
}

func (s *smtpSender) Send(to, subject, body string) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", to)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "\r\n" + body

	var auth smtp.Auth
	if s.user != "" && s.pass != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}

	addr := s.host + ":" + s.port
	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message))
}

func composeConfirmation(e event.BookingCreated, baseURL string) (subject, body string) {
	subject = "Booking Confirmed - " + e.SessionTitle
	body = fmt.Sprintf(`Hi %s,

Your spot is confirmed!

Class: %s
Studio: %s
When: %s (%d min)

Need to cancel? Use this link:
%s/api/bookings/cancel/%s

See you on the mat!

- %s`, e.FirstName, e.SessionTitle, e.StudioName, e.SessionStartsAt.Format(timeLayout), e.SessionDuration, baseURL, e.CancelToken, e.StudioName)
	return subject, body
}

func composePending(e event.BookingCreated) (subject, body string) {
	subject = "Booking Request Received - " + e.SessionTitle
	body = fmt.Sprintf(`Hi %s,

We received your booking request.

Class: %s
Studio: %s
When: %s

The studio reviews every request. You will hear from us once yours has been processed.

- %s`, e.FirstName, e.SessionTitle, e.StudioName, e.SessionStartsAt.Format(timeLayout), e.StudioName)
	return subject, body
}

func composeApproved(e event.BookingApproved, baseURL string) (subject, body string) {
	subject = "Booking Approved - " + e.SessionTitle
	body = fmt.Sprintf(`Hi %s,

Good news - your booking was approved!

Class: %s
Studio: %s
When: %s (%d min)

Need to cancel? Use this link:
%s/api/bookings/cancel/%s

See you on the mat!

- %s`, e.FirstName, e.SessionTitle, e.StudioName, e.SessionStartsAt.Format(timeLayout), e.SessionDuration, baseURL, e.CancelToken, e.StudioName)
	return subject, body
}

func composeRejected(e event.BookingRejected) (subject, body string) {
	subject = "Booking Request Declined - " + e.SessionTitle
	reason := ""
	if e.Reason != "" {
		reason = "\nReason: " + e.Reason + "\n"
	}
	body = fmt.Sprintf(`Hi %s,

Unfortunately the studio could not accept your booking request.

Class: %s
Studio: %s
When: %s
%s
- %s`, e.FirstName, e.SessionTitle, e.StudioName, e.SessionStartsAt.Format(timeLayout), reason, e.StudioName)
	return subject, body
}

func composeCancelled(e event.BookingCancelled) (subject, body string) {
	subject = "Booking Cancelled - " + e.SessionTitle
	body = fmt.Sprintf(`Hi %s,

Your booking has been cancelled:

Class: %s
Studio: %s
When: %s

- %s`, e.FirstName, e.SessionTitle, e.StudioName, e.SessionStartsAt.Format(timeLayout), e.StudioName)
	return subject, body
}
