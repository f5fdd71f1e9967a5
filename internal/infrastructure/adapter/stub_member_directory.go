package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/karacoop/credit-service/internal/domain/port"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// StubMemberDirectory is a development/test adapter that fabricates a
// deterministic member record from the requested id. It implements
// port.MemberDirectory until the member registry service is wired in.
type StubMemberDirectory struct{}

// NewStubMemberDirectory creates a new stub adapter.
func NewStubMemberDirectory() *StubMemberDirectory {
	return &StubMemberDirectory{}
}

// FindByID returns a deterministic member derived from the id, which allows
// repeatable test scenarios.
func (d *StubMemberDirectory) FindByID(_ context.Context, id string) (*port.Member, error) {
	if id == "" {
		return nil, valueobject.ErrNotFound
	}

	h := sha256.Sum256([]byte(id))
	matricule := fmt.Sprintf("M%04d", uint32(h[0])<<8|uint32(h[1]))

	return &port.Member{
		ID:        id,
		Matricule: matricule,
		FullName:  fmt.Sprintf("Membre %s", matricule),
		Email:     fmt.Sprintf("%s@karacoop.example", matricule),
		Active:    true,
		// Every other fabricated member qualifies as a parrain, at the
		// service-wide default percentage.
		Sponsor: h[2]%2 == 0,
	}, nil
}
