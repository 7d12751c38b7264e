package model

// Desk represents a reservable desk in the shared workspace inventory.
// Tags are stored in their canonical upper-case form and are unique across
// the whole inventory, including desks currently marked unavailable.
//
// Fields:
//  ID               – primary key identifier.
//  Tag              – unique desk label (e.g. "A1"), canonical upper case.
//  DeskType         – one of the fixed desk type catalog, see DeskTypes.
//  IncludedResource – hardware bundle installed at the desk; empty when bare.
//  Available        – whether the desk can currently be reserved.
type Desk struct {
	ID               uint64 `json:"id"`               // desks.id
	Tag              string `json:"tag"`              // desks.tag
	DeskType         string `json:"desk_type"`        // desks.desk_type
	IncludedResource string `json:"included_resource"` // desks.included_resource
	Available        bool   `json:"available"`        // desks.available
}

// DeskEntry is the request payload used when an administrator creates a
// desk. The ID is assigned by the database on insert.
type DeskEntry struct {
	Tag              string `json:"tag"`
	DeskType         string `json:"desk_type"`
	IncludedResource string `json:"included_resource"`
	Available        bool   `json:"available"`
}

// deskTypes is the fixed catalog of desk types offered by the workspace.
// The inventory UI presents exactly these options; anything else is
// rejected at creation and update time.
var deskTypes = []string{
	"Computer Desk",
	"Standing Desk",
	"Open Study Desk",
	"Enclosed Study Desk",
	"Enclosed Study Office",
}

// includedResources is the fixed catalog of hardware bundles a desk may
// include. The empty string means the desk has no included hardware.
var includedResources = []string{
	"",
	"Windows Desktop i5",
	"Windows Desktop i7",
	"Windows Desktop i9",
	"iMac 24 w/ Mac Mini",
	"iMac 24 w/ Mac Pro",
	"iMac 24 w/ Mac Studio",
	"Studio Display w/ Mac Mini",
	"Studio Display w/ Mac Pro",
	"Studio Display w/ Mac Studio",
	"Pro Display XDR w/ Mac Mini",
	"Pro Display XDR w/ Mac Pro",
	"Pro Display XDR w/ Mac Studio",
}

// DeskTypes returns a copy of the desk type catalog in display order.
func DeskTypes() []string {
	out := make([]string, len(deskTypes))
	copy(out, deskTypes)
	return out
}

// IncludedResources returns a copy of the hardware bundle catalog in
// display order. The first entry is the empty string for bare desks.
func IncludedResources() []string {
	out := make([]string, len(includedResources))
	copy(out, includedResources)
	return out
}

// ValidDeskType reports whether t is a member of the desk type catalog.
func ValidDeskType(t string) bool {
	for _, v := range deskTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidIncludedResource reports whether r is a member of the hardware
// bundle catalog. The empty string is valid.
func ValidIncludedResource(r string) bool {
	for _, v := range includedResources {
		if v == r {
			return true
		}
	}
	return false
}
