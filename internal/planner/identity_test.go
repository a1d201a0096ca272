package planner

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want IDClass
	}{
		{"13-digit timestamp id", "1728400000123", IDClassUpsert},
		{"15 chars is still local-shaped", "123456789012345", IDClassUpsert},
		{"16 chars tips over", "1234567890123456", IDClassInsert},
		{"18-char opaque id", "aBcDeFgHiJkLmNoPqR", IDClassInsert},
		{"36-char uuid", "2f1f9a3c-8a34-4a64-9a57-0cf4f9f2a111", IDClassInsert},
		{"seed id", "s1", IDClassUpsert},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyID(tt.id))
		})
	}
}

func TestNewLocalIDShape(t *testing.T) {
	id := NewLocalID()
	assert.LessOrEqual(t, len(id), localIDMaxLen)
	assert.Equal(t, IDClassUpsert, ClassifyID(id))

	ms, err := strconv.ParseInt(id, 10, 64)
	assert.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), ms, 5000)
}
