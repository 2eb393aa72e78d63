package port

import "goldenPalmDash/internal/modules/dashboard/domain"

// PageStateStore persists the cacheable UI part of a page.
type PageStateStore interface {
	Load(key string) (domain.UIState, bool)
	Save(key string, ui domain.UIState)
	Delete(key string)
}
