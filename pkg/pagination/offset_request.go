package pagination

// OffsetRequest carries one-based page number and page size, typically bound
// from query or body parameters.
type OffsetRequest struct {
	Page int `json:"page" query:"page" validate:"min=1"`
	Size int `json:"size" query:"size" validate:"min=1,max=500"`
}

// Validate normalizes out-of-range values in place instead of rejecting
// them: a bad page becomes page 1, a bad size the default, an oversized one
// the cap.
func (r *OffsetRequest) Validate() error {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
	return nil
}
