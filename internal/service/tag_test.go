package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recipe-api/internal/model"
	"github.com/iliyamo/recipe-api/internal/queue"
)

func tagNames(tags []model.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}

func TestListTags_OrderedByNameDesc(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	u, err := f.accounts.CreateUser(ctx, "test@test.com", "test@123", "")
	require.NoError(t, err)

	for _, name := range []string{"Burger", "Pizza", "Vegan", "Non Vegetarian"} {
		_, err := f.tags.CreateTag(ctx, u, name)
		require.NoError(t, err)
	}

	tags, err := f.tags.ListTags(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vegan", "Pizza", "Non Vegetarian", "Burger"}, tagNames(tags))
}

func TestListTags_IsolatedPerUser(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	a, err := f.accounts.CreateUser(ctx, "a@test.com", "test@123", "")
	require.NoError(t, err)
	b, err := f.accounts.CreateUser(ctx, "b@test.com", "test@123", "")
	require.NoError(t, err)

	_, err = f.tags.CreateTag(ctx, b, "Pizza")
	require.NoError(t, err)
	burger, err := f.tags.CreateTag(ctx, a, "Burger")
	require.NoError(t, err)

	tags, err := f.tags.ListTags(ctx, a)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, burger.ID, tags[0].ID)
	assert.Equal(t, "Burger", tags[0].Name)

	tags, err = f.tags.ListTags(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pizza"}, tagNames(tags))
}

func TestListTags_EmptyNotNil(t *testing.T) {
	f := newFixture(t, 0)
	tags, err := f.tags.ListTags(context.Background(), model.User{ID: 77})
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestCreateTag_OwnerIsCaller(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	u, err := f.accounts.CreateUser(ctx, "a@test.com", "test@123", "")
	require.NoError(t, err)

	tag, err := f.tags.CreateTag(ctx, u, "  Tag Test  ")
	require.NoError(t, err)
	assert.NotZero(t, tag.ID)
	assert.Equal(t, u.ID, tag.UserID)
	assert.Equal(t, "Tag Test", tag.Name)

	assert.Equal(t, []string{queue.EventUserCreated, queue.EventTagCreated}, f.events.types())
}

func TestCreateTag_InvalidNameRejected(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	u, err := f.accounts.CreateUser(ctx, "a@test.com", "test@123", "")
	require.NoError(t, err)

	for _, name := range []string{"", "   ", strings.Repeat("x", 256)} {
		_, err := f.tags.CreateTag(ctx, u, name)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
	}

	tags, err := f.tags.ListTags(ctx, u)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagService_RequiresIdentity(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.tags.ListTags(ctx, model.User{})
	var ae *AuthenticationError
	assert.ErrorAs(t, err, &ae)

	_, err = f.tags.CreateTag(ctx, model.User{}, "Pizza")
	assert.ErrorAs(t, err, &ae)
}
