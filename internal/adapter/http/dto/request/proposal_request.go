package request

import "proposal_gateway/internal/domain/entities"

// ProposalFormRequest is the body of the validation endpoint. It has the
// proposal payload shape; unknown fields are ignored.
type ProposalFormRequest struct {
	entities.ProposalFormData
}

// ToForm returns the form with RequestedServices never nil.
func (r ProposalFormRequest) ToForm() entities.ProposalFormData {
	form := r.ProposalFormData
	if form.RequestedServices == nil {
		form.RequestedServices = []string{}
	}
	return form
}
