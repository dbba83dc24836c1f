package material

import (
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

type Supplier struct {
	id           kernel.UUID
	name         string
	contactEmail string
	phone        string
}

func NewSupplier(id kernel.UUID, name, contactEmail, phone string) (*Supplier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("supplier name")
	}
	return &Supplier{id: id, name: name, contactEmail: contactEmail, phone: phone}, nil
}

func (s *Supplier) ID() kernel.UUID      { return s.id }
func (s *Supplier) Name() string         { return s.name }
func (s *Supplier) ContactEmail() string { return s.contactEmail }
func (s *Supplier) Phone() string        { return s.phone }
