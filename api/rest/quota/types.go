package quota

import q "codeberg.org/wayfare/server/internal/quota"

// Response reports the caller's current quota windows without consuming
// anything
type Response struct {
	UsageType string  `json:"usage_type"`
	Daily     q.Usage `json:"daily"`
	Monthly   q.Usage `json:"monthly"`
}
