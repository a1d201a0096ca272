package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedDeliversToAllUserSubscribers(t *testing.T) {
	f := NewFeed()
	a, cancelA := f.Subscribe("u1")
	defer cancelA()
	b, cancelB := f.Subscribe("u1")
	defer cancelB()
	other, cancelOther := f.Subscribe("u2")
	defer cancelOther()

	f.Publish("u1", Snapshot{Kind: KindTasks, Items: []string{"x"}})

	assert.Equal(t, KindTasks, (<-a).Kind)
	assert.Equal(t, KindTasks, (<-b).Kind)
	select {
	case snap := <-other:
		t.Fatalf("u2 must not receive u1 snapshots, got %v", snap)
	default:
	}
}

func TestFeedCancelClosesChannel(t *testing.T) {
	f := NewFeed()
	ch, cancel := f.Subscribe("u1")
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic on the closed channel.
	f.Publish("u1", Snapshot{Kind: KindGrades})
}

func TestFeedSkipsSlowSubscriber(t *testing.T) {
	f := NewFeed()
	ch, cancel := f.Subscribe("u1")
	defer cancel()

	// Fill the buffer and keep going; the publisher must never block.
	for i := 0; i < 40; i++ {
		f.Publish("u1", Snapshot{Kind: KindClasses, Items: i})
	}

	require.Len(t, ch, 16, "subscriber buffer holds the first snapshots, the rest are dropped")
}

func TestCollectionKey(t *testing.T) {
	assert.Equal(t, "tasks-guest", CollectionKey(KindTasks, "guest"))
	assert.Equal(t, "grades-u42", CollectionKey(KindGrades, "u42"))
}

func TestKindsOrder(t *testing.T) {
	assert.Equal(t, []Kind{KindTasks, KindClasses, KindSubjects, KindGrades}, Kinds())
}
