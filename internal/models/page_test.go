package models

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
		wantOffset          int
	}{
		{"defaults", 0, 0, 1, DefaultPageLimit, 0},
		{"negative page", -3, 5, 1, 5, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"limit capped", 3, 1000, 3, MaxPageLimit, 200},
		{"negative limit", 1, -1, 1, DefaultPageLimit, 0},
		{"huge page", math.MaxInt, 10, math.MaxInt / 10, 10, (math.MaxInt/10 - 1) * 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, offset := NormalizePaging(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
			assert.GreaterOrEqual(t, offset, 0)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 2, TotalPages(15, 10))
	assert.Equal(t, 1, TotalPages(5, 0))
}

func TestNewPageNeverNil(t *testing.T) {
	p := NewPage[int](nil, 0, 1, 10)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)
}

func TestVideoVisibility(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	hidden := &Video{OwnerID: owner, IsPublished: false}
	assert.True(t, hidden.VisibleTo(owner))
	assert.False(t, hidden.VisibleTo(other))
	assert.False(t, hidden.VisibleTo(uuid.Nil))

	public := &Video{OwnerID: owner, IsPublished: true}
	assert.True(t, public.VisibleTo(uuid.Nil))
}

func TestLikeTargetTypeValid(t *testing.T) {
	assert.True(t, LikeTargetVideo.Valid())
	assert.True(t, LikeTargetComment.Valid())
	assert.True(t, LikeTargetTweet.Valid())
	assert.False(t, LikeTargetType("playlist").Valid())
}
