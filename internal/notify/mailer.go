package notify

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	gomail "gopkg.in/gomail.v2"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
)

// Mailer sends borrow confirmations over SMTP with the receipt attached.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = port == 465
	return &Mailer{dialer: d, from: from}
}

// Send delivers the confirmation email to all recipients in one message.
func (m *Mailer) Send(recipients []string, tx models.Transaction, receipt []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", "Borrow confirmation - Code: "+tx.BorrowCode)
	msg.SetBody("text/html", confirmationBody(tx))
	msg.Attach(
		fmt.Sprintf("receipt-%s.pdf", tx.BorrowCode),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(receipt)
			return err
		}),
	)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "send confirmation email")
	}
	return nil
}

func confirmationBody(tx models.Transaction) string {
	return fmt.Sprintf(`<html><body>
<h2>Hello %s,</h2>
<p>You have borrowed <b>%s</b>.</p>
<p>Your borrow code is: <b>%s</b></p>
<p>Please return the book on or before: <b>%s</b>.</p>
<p>Your detailed receipt is attached to this email.</p>
<br>
<p>Thank you,</p>
<p><b>LibraNCT Library</b></p>
</body></html>`, tx.StudentName, tx.BookTitle, tx.BorrowCode, tx.ReturnDate)
}
