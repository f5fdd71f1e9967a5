package valueobject

import (
	"fmt"
	"time"
)

// Human-readable reference codes stamped on demands and payments. The
// matricule comes from the member directory and plays no part in any
// engine computation.

// DemandReference formats a demand reference code,
// e.g. MK_DEMANDE_CSP_M0042_150126_0930.
func DemandReference(matricule string, at time.Time) string {
	return referenceCode("DEMANDE", matricule, at)
}

// PaymentReference formats a payment reference code,
// e.g. MK_PAIEMENT_CSP_M0042_150126_0930.
func PaymentReference(matricule string, at time.Time) string {
	return referenceCode("PAIEMENT", matricule, at)
}

func referenceCode(kind, matricule string, at time.Time) string {
	return fmt.Sprintf("MK_%s_CSP_%s_%s_%s",
		kind, matricule, at.Format("020106"), at.Format("1504"))
}
