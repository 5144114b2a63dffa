package staff

import (
	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/common/validation"
)

type SetApprovalDTO struct {
	StaffID    string `json:"staffId"`
	IsApproved *bool  `json:"isApproved"`
}

func (d SetApprovalDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("staffId", d.StaffID).Required().UUID()
	v.Field("isApproved", d.IsApproved).Required()
	return v.Validate()
}
