package service

import (
	"testing"

	"taskbox/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestOwnershipGuard_Authorize(t *testing.T) {
	guard := NewOwnershipGuard()

	owner := &entity.Identity{ID: 1, Username: "alice"}
	stranger := &entity.Identity{ID: 2, Username: "bob"}
	todo := &entity.Todo{ID: 10, Text: "buy milk", OwnerID: 1}

	assert.True(t, guard.Authorize(owner, todo))
	assert.False(t, guard.Authorize(stranger, todo))
}

func TestOwnershipGuard_Authorize_NilInputs(t *testing.T) {
	guard := NewOwnershipGuard()

	todo := &entity.Todo{ID: 10, OwnerID: 1}
	identity := &entity.Identity{ID: 1}

	assert.False(t, guard.Authorize(nil, todo))
	assert.False(t, guard.Authorize(identity, nil))
	assert.False(t, guard.Authorize(nil, nil))
}
