package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/drug-catalog-be/internal/auth"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
	"github.com/hongminglow/drug-catalog-be/internal/storage/memory"
)

func TestParseFlags(t *testing.T) {
	admin, password, err := parseFlags([]string{
		"-username", "root", "-email", "root@x.com", "-password", "s3cret",
		"-referral-id", "REF1", "-phone", " +60123 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "root", admin.Username)
	assert.Equal(t, "+60123", admin.PhoneNumber)
	assert.Equal(t, "s3cret", password)

	_, _, err = parseFlags([]string{"-username", "root"})
	require.Error(t, err)
	assert.Equal(t, "missing required flags: -email, -password, -phone, -referral-id", err.Error())
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	admin, password, err := parseFlags([]string{
		"-username", "root", "-email", "root@x.com", "-password", "s3cret",
		"-referral-id", "REF1", "-phone", "+60123",
	})
	require.NoError(t, err)

	created, err := createAdmin(ctx, store, admin, password)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NoError(t, auth.CheckPassword(created.PasswordHash, "s3cret"))

	_, err = createAdmin(ctx, store, admin, password)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}
