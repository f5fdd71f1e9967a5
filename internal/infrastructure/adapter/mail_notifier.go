package adapter

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/internal/domain/port"
	"github.com/karacoop/credit-service/internal/infrastructure/config"
	"github.com/karacoop/credit-service/pkg/money"
)

// MailNotifier delivers member notifications over SMTP.
// It implements port.Notifier.
type MailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailNotifier creates a notifier from SMTP settings.
func NewMailNotifier(cfg config.SMTPConfig) *MailNotifier {
	return &MailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// NotifyPaymentReceived confirms a collected payment to the member.
func (n *MailNotifier) NotifyPaymentReceived(_ context.Context, member *port.Member, contract *model.CreditContract, payment *model.CreditPayment) error {
	body := fmt.Sprintf(`
		<h2>Paiement recu</h2>
		<p>Bonjour %s,</p>
		<p>Nous avons bien recu votre versement de %s (reference %s).</p>
		<p>Total verse : %s &mdash; reste a payer : %s.</p>
	`, member.FullName, money.Format(payment.Amount()), payment.Reference(),
		money.Format(contract.AmountPaid()), money.Format(contract.AmountRemaining()))
	return n.send(member.Email, "Confirmation de paiement", body)
}

// NotifyPenaltyAssessed informs the member of a late-payment penalty.
func (n *MailNotifier) NotifyPenaltyAssessed(_ context.Context, member *port.Member, penalty *model.CreditPenalty) error {
	body := fmt.Sprintf(`
		<h2>Penalite de retard</h2>
		<p>Bonjour %s,</p>
		<p>Une penalite de %s a ete appliquee pour %d jour(s) de retard
		sur l'echeance du %s.</p>
	`, member.FullName, money.Format(penalty.Amount()), penalty.DaysLate(),
		penalty.DueDate().Format("02/01/2006"))
	return n.send(member.Email, "Penalite de retard", body)
}

// NotifyContractClosed confirms the final closure of a credit.
func (n *MailNotifier) NotifyContractClosed(_ context.Context, member *port.Member, contract *model.CreditContract) error {
	body := fmt.Sprintf(`
		<h2>Credit solde</h2>
		<p>Bonjour %s,</p>
		<p>Votre credit est integralement solde et clos.
		Quittance : %s.</p>
	`, member.FullName, contract.QuittanceRef())
	return n.send(member.Email, "Cloture de votre credit", body)
}

func (n *MailNotifier) send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("member has no email address")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
