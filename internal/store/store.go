// internal/store/store.go

// Package store holds what the two persistence backends share: the entity
// collection kinds, the per-user collection keys, and the snapshot feed that
// redelivers whole collections to live subscribers.
package store

import "fmt"

// Kind names one of the four per-user entity collections.
type Kind string

const (
	KindTasks    Kind = "tasks"
	KindClasses  Kind = "classes"
	KindSubjects Kind = "subjects"
	KindGrades   Kind = "grades"
)

// Kinds lists the four collection kinds in their canonical order. A data view
// is ready only once every one of these has delivered a first snapshot.
func Kinds() []Kind {
	return []Kind{KindTasks, KindClasses, KindSubjects, KindGrades}
}

// CollectionKey is the per-user, per-kind key the local store files a whole
// collection under, e.g. "tasks-guest".
func CollectionKey(kind Kind, userID string) string {
	return fmt.Sprintf("%s-%s", kind, userID)
}
