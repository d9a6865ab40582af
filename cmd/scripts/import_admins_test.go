package main

import (
	"context"
	"strings"
	"testing"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories/memory"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestImportAdmins(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAdminUserRepository()
	auth := services.NewAuthService(repo, nil, zap.NewNop())

	csv := strings.Join([]string{
		"tenantId,name,email,password,role",
		"t1,Coach One,one@example.com,pass-one,owner",
		",Coach Two,two@example.com,pass-two,",
		"t1,Dup,ONE@example.com,pass,owner",
		"short,row",
		"t3,No Password,three@example.com,,owner",
	}, "\n")

	imported, err := importAdmins(ctx, auth, strings.NewReader(csv), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	one, err := repo.FindByEmail(ctx, "one@example.com")
	require.NoError(t, err)
	assert.Equal(t, "t1", one.TenantID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(one.Password), []byte("pass-one")))

	two, err := repo.FindByEmail(ctx, "two@example.com")
	require.NoError(t, err)
	assert.Len(t, two.TenantID, 36)
	assert.Equal(t, "owner", two.Role)

	_, err = repo.FindByEmail(ctx, "three@example.com")
	assert.Error(t, err)
}

func TestImportAdmins_HeaderOnly(t *testing.T) {
	auth := services.NewAuthService(memory.NewAdminUserRepository(), nil, zap.NewNop())
	_, err := importAdmins(context.Background(), auth, strings.NewReader("tenantId,name,email,password,role\n"), zap.NewNop())
	assert.Error(t, err)
}
