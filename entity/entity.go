package entity

import (
	"github.com/casualjim/tracked/events"
	"github.com/casualjim/tracked/prop"
)

// Entity is the contract shared by entities and collections.
type Entity interface {
	ID() string
	SetID(id string)
	CheckID(id string) bool
	IsNew() bool
	EntityName() string

	IsChanged() bool
	Commit()
	Restore()
	ChangedProps() []EntityChangedProps
	ChangeablePropsCount() int

	PropertyChanged() events.Source[PropertyChangedEvent]
	IDChanged() events.Source[IDChangedEvent]
}

// PropertyChangedEvent is emitted when a property of the entity changed. When
// the change comes from a sub-entity or a collection, PropName is the id of
// that child.
type PropertyChangedEvent struct {
	EntityID string
	PropName string
}

// IDChangedEvent is emitted by SetID. OldID is the temporary id when the
// entity was new.
type IDChangedEvent struct {
	OldID string
	NewID string
}

// EntityChangedProps is one entry of a changed-props report.
type EntityChangedProps struct {
	EntityID       string             `json:"entityId"`
	EntityName     string             `json:"entityName"`
	Order          *int               `json:"order,omitempty"`
	ChangedProps   []prop.ChangedProp `json:"changedProps"`
	ParentEntityID string             `json:"parentEntityId,omitempty"`
}

// childReports collects the reports of children, tagging entries that have
// no parent yet with parentID.
func childReports[E Entity](parentID string, children []E) []EntityChangedProps {
	var result []EntityChangedProps
	for _, child := range children {
		for _, entry := range child.ChangedProps() {
			if entry.ParentEntityID == "" {
				entry.ParentEntityID = parentID
			}
			result = append(result, entry)
		}
	}
	return result
}

func dropUnchanged(entries []EntityChangedProps) []EntityChangedProps {
	result := entries[:0:0]
	for _, entry := range entries {
		if len(entry.ChangedProps) > 0 {
			result = append(result, entry)
		}
	}
	return result
}
