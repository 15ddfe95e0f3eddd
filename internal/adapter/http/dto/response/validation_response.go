package response

import "proposal_gateway/internal/domain/entities"

type ValidationResponse struct {
	Valid  bool                 `json:"valid"`
	Errors entities.FieldErrors `json:"errors"`
}

func FromFieldErrors(errs entities.FieldErrors) ValidationResponse {
	if errs == nil {
		errs = entities.FieldErrors{}
	}
	return ValidationResponse{Valid: errs.Empty(), Errors: errs}
}
